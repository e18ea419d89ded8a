// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/nbatista0630/su2edu-go/ferr"
)

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01. defaults validate")

	var cfg Config
	cfg.NDim = 2
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		tst.Errorf("default config should validate: %v", err)
		return
	}
	chk.Scalar(tst, "gamma", 1e-15, cfg.Gas.Gamma, 1.4)
	chk.Scalar(tst, "limiter K", 1e-15, cfg.Num.LimiterCoeff, 5.0)
	chk.IntAssert(len(cfg.Time.RKAlphas), 5)
}

func Test_config02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config02. invalid values are rejected as InputInvalid")

	check := func(mutate func(*Config)) {
		var cfg Config
		cfg.NDim = 2
		cfg.SetDefaults()
		mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			tst.Errorf("expected validation error")
			return
		}
		if !errors.Is(err, ferr.Sentinel(ferr.InputInvalid)) {
			tst.Errorf("expected InputInvalid, got %v", err)
		}
	}

	check(func(c *Config) { c.NDim = 4 })
	check(func(c *Config) { c.Solver = "lattice_boltzmann" })
	check(func(c *Config) { c.Solver = RANS }) // rans without a closure
	check(func(c *Config) { c.Turbulence = TurbSA }) // closure without rans
	check(func(c *Config) { c.Num.Scheme = "upwind99" })
	check(func(c *Config) { c.Time.CFLcutback = 1.5 })
	check(func(c *Config) { c.Time.Integration = DualTimeBDF2 }) // missing dt
	check(func(c *Config) {
		c.BCs = map[string]*BC{"inflow": {Kind: BCInletTotal}}
	})
	check(func(c *Config) {
		c.BCs = map[string]*BC{"wing": {Kind: "slippery"}}
	})
}

func Test_config03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config03. BC parameter lookup and flow angles")

	var cfg Config
	cfg.NDim = 2
	cfg.SetDefaults()
	cfg.Free.AoA = 90
	cfg.BCs = map[string]*BC{
		"airfoil": {Kind: BCWallHeatflux},
		"plate":   {Kind: BCWallIsothermal, Prms: fun.Prms{&fun.Prm{N: "Twall", V: 300}}},
		"exit":    {Kind: BCOutletPressure, Prms: fun.Prms{&fun.Prm{N: "Pback", V: 90000}}},
	}
	if err := cfg.Validate(); err != nil {
		tst.Errorf("config should validate: %v", err)
		return
	}
	dir := cfg.FlowAngles()
	chk.Scalar(tst, "dir_x", 1e-15, dir[0], 0)
	chk.Scalar(tst, "dir_y", 1e-15, dir[1], 1)
	chk.Scalar(tst, "Pback", 1e-15, cfg.BCs["exit"].Prms.Find("Pback").V, 90000)
}
