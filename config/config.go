// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the typed option bag consumed by the numerical core.
// Parsing a user's configuration file into these structs is the caller's
// job; the core only sees validated values.
package config

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/nbatista0630/su2edu-go/ferr"
)

// Solver kinds.
const (
	Euler        = "euler"
	NavierStokes = "navier_stokes"
	RANS         = "rans"
)

// Turbulence closures.
const (
	TurbNone = "none"
	TurbSA   = "sa"
	TurbSST  = "sst"
)

// Convective schemes.
const (
	SchemeRoe  = "roe"
	SchemeJST  = "jst"
	SchemeAUSM = "ausm"
	SchemeHLLC = "hllc"
)

// Limiters.
const (
	LimiterNone   = "none"
	LimiterVenkat = "venkat"
	LimiterBarth  = "barth"
)

// Gradient reconstruction methods.
const (
	GradGreenGauss   = "green_gauss"
	GradLeastSquares = "least_squares"
)

// Time-integration modes.
const (
	ExplicitRK   = "explicit_rk"
	ImplicitEuler = "implicit_euler"
	DualTimeBDF2 = "dual_time_bdf2"
)

// NumericsData holds spatial-discretization options.
type NumericsData struct {
	Scheme       string  `json:"convective_scheme"` // "roe", "jst", "ausm", "hllc"
	MUSCL        bool    `json:"muscl"`             // second-order reconstruction
	Limiter      string  `json:"limiter"`           // "none", "venkat", "barth"
	LimiterCoeff float64 `json:"limiter_coefficient"`
	Gradient     string  `json:"gradient"` // "green_gauss" or "least_squares"

	EntropyFixEps float64 `json:"entropy_fix_eps"` // Harten-Hyman eigenvalue fix
	JSTkappa2     float64 `json:"jst_kappa2"`
	JSTkappa4     float64 `json:"jst_kappa4"`

	LowMachPrec     bool    `json:"low_mach_preconditioning"`
	LowMachCutoff   float64 `json:"low_mach_cutoff"` // reference-Mach floor for Weiss-Smith scaling
}

// TimeData holds pseudo-time and physical-time stepping options.
type TimeData struct {
	Integration string  `json:"time_integration"` // "explicit_rk", "implicit_euler", "dual_time_bdf2"
	CFLinit     float64 `json:"cfl_init"`
	CFLmax      float64 `json:"cfl_max"`
	CFLgrowth   float64 `json:"cfl_growth"`
	CFLcutback  float64 `json:"cfl_cutback"`
	CFLfloor    float64 `json:"cfl_floor"` // below this the run is declared diverged

	MaxIter    int     `json:"max_iter"`
	ResidTarget float64 `json:"residual_target"` // log10 drop of the density residual

	// unsteady (dual-time) options
	PhysDt      float64 `json:"physical_dt"`
	PhysSteps   int     `json:"physical_steps"`
	InnerIter   int     `json:"inner_iter"`

	// explicit multistage coefficients; empty selects the standard 5-stage set
	RKAlphas []float64 `json:"rk_alphas"`
}

// LinSolData holds options for the Krylov solver and its preconditioner.
type LinSolData struct {
	Name     string  `json:"linear_solver"`         // "gmres" or "bicgstab"
	Precond  string  `json:"linear_preconditioner"` // "jacobi", "ilu0", "sgs"
	Tol      float64 `json:"linear_tol"`            // relative residual target
	MaxIter  int     `json:"linear_max_iter"`
	Restart  int     `json:"gmres_restart"`
}

// FreestreamData holds the reference state the far field is built from.
type FreestreamData struct {
	Mach        float64 `json:"freestream_mach"`
	Temperature float64 `json:"freestream_temperature"`
	Pressure    float64 `json:"freestream_pressure"`
	AoA         float64 `json:"aoa"`      // degrees
	Sideslip    float64 `json:"sideslip"` // degrees
	Reynolds    float64 `json:"reynolds"`
	RefLength   float64 `json:"reference_length"`
	RefArea     float64 `json:"reference_area"`
}

// GasData holds the perfect-gas and transport constants.
type GasData struct {
	Gamma          float64 `json:"gamma"`
	GasConstant    float64 `json:"gas_constant"`
	PrandtlLaminar float64 `json:"prandtl_laminar"`
	PrandtlTurb    float64 `json:"prandtl_turbulent"`
}

// BC holds one marker's boundary condition: a kind string understood by the
// boundary layer plus a free-form named-parameter list (e.g. "Twall" for
// isothermal walls, "Ptot"/"Ttot" for total inlets, "Pback" for pressure
// outlets).
type BC struct {
	Kind string   `json:"kind"`
	Prms fun.Prms `json:"prms"`
}

// Recognized BC kinds.
const (
	BCWallHeatflux   = "wall_heatflux"
	BCWallIsothermal = "wall_isothermal"
	BCFarfield       = "farfield"
	BCSymmetry       = "symmetry"
	BCInletTotal     = "inlet_total"
	BCOutletPressure = "outlet_pressure"
)

// Config is the full option bag of a run.
type Config struct {
	NDim       int    `json:"ndim"`
	Solver     string `json:"solver"`     // "euler", "navier_stokes", "rans"
	Turbulence string `json:"turbulence"` // "none", "sa", "sst"

	Num  NumericsData   `json:"numerics"`
	Time TimeData       `json:"time"`
	Lin  LinSolData     `json:"linear"`
	Free FreestreamData `json:"freestream"`
	Gas  GasData        `json:"gas"`

	BCs map[string]*BC `json:"bcs"` // marker -> condition
}

// SetDefaults fills every zero-valued option with its standard value.
func (o *Config) SetDefaults() {
	if o.Solver == "" {
		o.Solver = Euler
	}
	if o.Turbulence == "" {
		o.Turbulence = TurbNone
	}
	if o.Num.Scheme == "" {
		o.Num.Scheme = SchemeRoe
	}
	if o.Num.Limiter == "" {
		o.Num.Limiter = LimiterVenkat
	}
	if o.Num.LimiterCoeff == 0 {
		o.Num.LimiterCoeff = 5.0
	}
	if o.Num.Gradient == "" {
		o.Num.Gradient = GradGreenGauss
	}
	if o.Num.EntropyFixEps == 0 {
		o.Num.EntropyFixEps = 0.1
	}
	if o.Num.JSTkappa2 == 0 {
		o.Num.JSTkappa2 = 0.5
	}
	if o.Num.JSTkappa4 == 0 {
		o.Num.JSTkappa4 = 1.0 / 64.0
	}
	if o.Num.LowMachCutoff == 0 {
		o.Num.LowMachCutoff = 1e-10
	}
	if o.Time.Integration == "" {
		o.Time.Integration = ImplicitEuler
	}
	if o.Time.CFLinit == 0 {
		o.Time.CFLinit = 5.0
	}
	if o.Time.CFLmax == 0 {
		o.Time.CFLmax = 1e4
	}
	if o.Time.CFLgrowth == 0 {
		o.Time.CFLgrowth = 1.2
	}
	if o.Time.CFLcutback == 0 {
		o.Time.CFLcutback = 0.5
	}
	if o.Time.CFLfloor == 0 {
		o.Time.CFLfloor = 1e-4
	}
	if o.Time.MaxIter == 0 {
		o.Time.MaxIter = 10000
	}
	if o.Time.ResidTarget == 0 {
		o.Time.ResidTarget = 8.0
	}
	if o.Time.InnerIter == 0 {
		o.Time.InnerIter = 50
	}
	if len(o.Time.RKAlphas) == 0 {
		o.Time.RKAlphas = []float64{0.25, 1.0 / 6.0, 0.375, 0.5, 1.0}
	}
	if o.Lin.Name == "" {
		o.Lin.Name = "gmres"
	}
	if o.Lin.Precond == "" {
		o.Lin.Precond = "ilu0"
	}
	if o.Lin.Tol == 0 {
		o.Lin.Tol = 1e-2
	}
	if o.Lin.MaxIter == 0 {
		o.Lin.MaxIter = 100
	}
	if o.Lin.Restart == 0 {
		o.Lin.Restart = 30
	}
	if o.Free.Mach == 0 {
		o.Free.Mach = 0.3
	}
	if o.Free.Temperature == 0 {
		o.Free.Temperature = 288.15
	}
	if o.Free.Pressure == 0 {
		o.Free.Pressure = 101325.0
	}
	if o.Free.RefLength == 0 {
		o.Free.RefLength = 1.0
	}
	if o.Free.RefArea == 0 {
		o.Free.RefArea = 1.0
	}
	if o.Gas.Gamma == 0 {
		o.Gas.Gamma = 1.4
	}
	if o.Gas.GasConstant == 0 {
		o.Gas.GasConstant = 287.05
	}
	if o.Gas.PrandtlLaminar == 0 {
		o.Gas.PrandtlLaminar = 0.72
	}
	if o.Gas.PrandtlTurb == 0 {
		o.Gas.PrandtlTurb = 0.9
	}
}

func oneOf(v string, valid ...string) bool {
	for _, s := range valid {
		if v == s {
			return true
		}
	}
	return false
}

// Validate checks all option values for consistency, returning an
// InputInvalid error on the first violation.
func (o *Config) Validate() error {
	if o.NDim != 2 && o.NDim != 3 {
		return ferr.New(ferr.InputInvalid, "ndim must be 2 or 3, got %d", o.NDim)
	}
	if !oneOf(o.Solver, Euler, NavierStokes, RANS) {
		return ferr.New(ferr.InputInvalid, "unknown solver %q", o.Solver)
	}
	if !oneOf(o.Turbulence, TurbNone, TurbSA, TurbSST) {
		return ferr.New(ferr.InputInvalid, "unknown turbulence model %q", o.Turbulence)
	}
	if o.Solver == RANS && o.Turbulence == TurbNone {
		return ferr.New(ferr.InputInvalid, "rans solver requires a turbulence model")
	}
	if o.Solver != RANS && o.Turbulence != TurbNone {
		return ferr.New(ferr.InputInvalid, "turbulence model %q requires solver=rans", o.Turbulence)
	}
	if !oneOf(o.Num.Scheme, SchemeRoe, SchemeJST, SchemeAUSM, SchemeHLLC) {
		return ferr.New(ferr.InputInvalid, "unknown convective scheme %q", o.Num.Scheme)
	}
	if !oneOf(o.Num.Limiter, LimiterNone, LimiterVenkat, LimiterBarth) {
		return ferr.New(ferr.InputInvalid, "unknown limiter %q", o.Num.Limiter)
	}
	if !oneOf(o.Num.Gradient, GradGreenGauss, GradLeastSquares) {
		return ferr.New(ferr.InputInvalid, "unknown gradient method %q", o.Num.Gradient)
	}
	if !oneOf(o.Time.Integration, ExplicitRK, ImplicitEuler, DualTimeBDF2) {
		return ferr.New(ferr.InputInvalid, "unknown time integration %q", o.Time.Integration)
	}
	if o.Time.Integration == DualTimeBDF2 && (o.Time.PhysDt <= 0 || o.Time.PhysSteps <= 0) {
		return ferr.New(ferr.InputInvalid, "dual_time_bdf2 needs physical_dt > 0 and physical_steps > 0")
	}
	if !oneOf(o.Lin.Name, "gmres", "bicgstab") {
		return ferr.New(ferr.InputInvalid, "unknown linear solver %q", o.Lin.Name)
	}
	if !oneOf(o.Lin.Precond, "jacobi", "ilu0", "sgs") {
		return ferr.New(ferr.InputInvalid, "unknown preconditioner %q", o.Lin.Precond)
	}
	if o.Time.CFLinit <= 0 || o.Time.CFLmax < o.Time.CFLinit {
		return ferr.New(ferr.InputInvalid, "cfl_init must be positive and not above cfl_max")
	}
	if o.Time.CFLgrowth < 1 {
		return ferr.New(ferr.InputInvalid, "cfl_growth must be >= 1, got %g", o.Time.CFLgrowth)
	}
	if o.Time.CFLcutback <= 0 || o.Time.CFLcutback >= 1 {
		return ferr.New(ferr.InputInvalid, "cfl_cutback must be in (0,1), got %g", o.Time.CFLcutback)
	}
	if o.Free.Mach <= 0 || o.Free.Temperature <= 0 || o.Free.Pressure <= 0 {
		return ferr.New(ferr.InputInvalid, "freestream mach, temperature and pressure must be positive")
	}
	if o.Gas.Gamma <= 1 {
		return ferr.New(ferr.InputInvalid, "gamma must exceed 1, got %g", o.Gas.Gamma)
	}
	for marker, bc := range o.BCs {
		if bc == nil {
			return ferr.New(ferr.InputInvalid, "marker %q has no condition", marker)
		}
		switch bc.Kind {
		case BCWallHeatflux, BCFarfield, BCSymmetry:
		case BCWallIsothermal:
			if p := bc.Prms.Find("Twall"); p == nil || p.V <= 0 {
				return ferr.New(ferr.InputInvalid, "marker %q: wall_isothermal needs Twall > 0", marker)
			}
		case BCInletTotal:
			pt, tt := bc.Prms.Find("Ptot"), bc.Prms.Find("Ttot")
			if pt == nil || tt == nil || pt.V <= 0 || tt.V <= 0 {
				return ferr.New(ferr.InputInvalid, "marker %q: inlet_total needs Ptot > 0 and Ttot > 0", marker)
			}
		case BCOutletPressure:
			if p := bc.Prms.Find("Pback"); p == nil || p.V <= 0 {
				return ferr.New(ferr.InputInvalid, "marker %q: outlet_pressure needs Pback > 0", marker)
			}
		default:
			return ferr.New(ferr.InputInvalid, "marker %q: unknown condition kind %q", marker, bc.Kind)
		}
	}
	return nil
}

// Viscous reports whether the configured equations carry viscous fluxes.
func (o *Config) Viscous() bool { return o.Solver != Euler }

// FlowAngles returns the freestream direction cosines from angle of attack
// and sideslip (both in degrees).
func (o *Config) FlowAngles() (dir []float64) {
	a := o.Free.AoA * math.Pi / 180
	b := o.Free.Sideslip * math.Pi / 180
	if o.NDim == 2 {
		return []float64{math.Cos(a), math.Sin(a)}
	}
	return []float64{math.Cos(a) * math.Cos(b), -math.Sin(b), math.Sin(a) * math.Cos(b)}
}
