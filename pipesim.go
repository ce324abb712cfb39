// This file is part of Pipesim.
//
// Pipesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pipesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pipesim.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/easyterm"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/preferences"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/kernels"
	"github.com/pipesim/pipesim/logger"
	"github.com/pipesim/pipesim/modalflag"
	"github.com/pipesim/pipesim/performance"
	"github.com/pipesim/pipesim/prefs"
	"github.com/pipesim/pipesim/reflection"
	"github.com/pipesim/pipesim/regression"
	"github.com/pipesim/pipesim/resources"
	"github.com/pipesim/pipesim/script"
	"github.com/pipesim/pipesim/statsview"
	"github.com/pipesim/pipesim/version"
)

// errors returned by launch()
const (
	parseError = "%v"
	modeError  = "error in %s mode: %v"
	noTerminal = "%s mode requires a terminal"
	noKernel   = "kernel required for %s mode"
	oneKernel  = "one kernel required for %s mode"
	tooMany    = "too many arguments for %s mode"
	oneScript  = "one lua file required for %s mode"
	runsFailed = "%d of %d runs failed"
)

const defaultPrefsFile = "preferences"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := launch(ctx, os.Stdout, os.Args[1:])
	if err != nil {
		fmt.Printf("* %v\n", err)
		stop()
		if curated.Is(err, parseError) {
			os.Exit(10)
		}
		os.Exit(20)
	}
}

// launch the mode selected by the arguments. help and all other output is
// written to output
func launch(ctx context.Context, output io.Writer, args []string) error {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "SWEEP", "STEP", "SCRIPT", "REGRESS", "VERSION")
	md.AdditionalHelp(fmt.Sprintf("kernels: %s", strings.Join(kernels.Names(), ", ")))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return curated.Errorf(parseError, err)
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)
	case "SWEEP":
		err = sweep(ctx, md)
	case "STEP":
		err = step(md)
	case "SCRIPT":
		err = runScript(ctx, md)
	case "REGRESS":
		err = regress(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		if curated.Is(err, parseError) {
			return err
		}
		return curated.Errorf(modeError, md, err)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	deps := md.AddBool("deps", false, "list module dependencies")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return curated.Errorf(parseError, err)
	}

	info := version.Current()
	fmt.Fprintln(md.Output, info)
	if *deps {
		fmt.Fprint(md.Output, info.Dependencies())
	}
	return nil
}

// flags common to every mode that creates a simulator
type common struct {
	prefsFile *string
	prefs     *string
	log       *bool
}

func addCommon(md *modalflag.Modes) common {
	def, err := resources.JoinPath(defaultPrefsFile)
	if err != nil {
		def = ""
	}
	return common{
		prefsFile: md.AddString("prefsfile", def, "preferences file (empty for none)"),
		prefs:     md.AddString("prefs", "", "preferences to apply on top of the preferences file"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

// parse the current mode and set up the log echo
func (c common) parse(md *modalflag.Modes) (bool, error) {
	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return false, nil
	case modalflag.ParseError:
		return false, curated.Errorf(parseError, err)
	}

	if *c.log {
		logger.SetEcho(logger.NewColorizer(md.Output))
	} else {
		logger.SetEcho(nil)
	}

	return true, nil
}

// the environment of the main emulation
func (c common) environment() (*environment.Environment, error) {
	prefs.PushCommandLineStack(*c.prefs)
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(*c.prefsFile)
	if err != nil {
		return nil, err
	}

	return environment.NewEnvironment(environment.MainEmulation, 0, p)
}

// creates the simulator. trace output is written to output if the trace flag
// or the trace preference is set
func (c common) simulator(output io.Writer, trace bool) (*hardware.Simulator, error) {
	env, err := c.environment()
	if err != nil {
		return nil, err
	}

	sim, err := hardware.NewSimulatorFromPrefs(env)
	if err != nil {
		return nil, err
	}

	sim.Tracing = sim.Tracing || trace
	sim.Trace = output

	return sim, nil
}

// the kernel and fixture named by the first argument
func fixture(md *modalflag.Modes, n, m int) (kernels.Fixture, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, curated.Errorf(noKernel, md)
	case 1:
	default:
		return nil, curated.Errorf(tooMany, md)
	}

	// kernels with two dimensions are square unless told otherwise
	if m == 0 {
		m = n
	}

	return kernels.NewFixture(md.GetArg(0), n, m)
}

func dump(filename string, sim *hardware.Simulator) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	reflection.Dump(f, sim.Machine)
	return f.Close()
}

// the continue check used by the run modes. the run ends if the context is
// cancelled
func contextCheck(ctx context.Context) func(program.Label) (program.State, error) {
	return func(_ program.Label) (program.State, error) {
		if err := ctx.Err(); err != nil {
			return program.Ending, err
		}
		return program.Running, nil
	}
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	n := md.AddInt("n", 64, "size of the kernel (bytes, halfwords or columns)")
	m := md.AddInt("m", 0, "number of rows for mxv and spmv (default n)")
	trace := md.AddBool("trace", false, "write trace for every instruction")
	dot := md.AddString("dot", "", "write graphviz graph of the machine state after the run")

	if ok, err := c.parse(md); !ok {
		return err
	}

	f, err := fixture(md, *n, *m)
	if err != nil {
		return err
	}

	sim, err := c.simulator(md.Output, *trace)
	if err != nil {
		return err
	}

	r := kernels.Run(sim, f, contextCheck(ctx))
	fmt.Fprintln(md.Output, r)

	if *dot != "" {
		if err := dump(*dot, sim); err != nil {
			return err
		}
	}

	return r.Err
}

func sweep(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	parallel := md.AddInt("parallel", runtime.NumCPU(), "maximum number of concurrent runs")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available %v)", statsview.Available()))
	statsAddr := md.AddString("statsaddr", statsview.DefaultAddress, "address of the stats server")
	profile := md.AddString("profile", "NONE", "profile the sweep: CPU, MEM, TRACE, ALL (comma separated)")

	if ok, err := c.parse(md); !ok {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf(oneKernel, md)
	}

	cases, err := regression.Cases(md.GetArg(0))
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	env, err := c.environment()
	if err != nil {
		return err
	}

	if *stats {
		srv, err := statsview.NewServer(*statsAddr)
		if err != nil {
			return err
		}
		srv.Start(md.Output)
		defer srv.Stop()
	}

	var done int
	var results []kernels.Result
	err = performance.RunProfiler(prf, "sweep", func() error {
		var err error
		results, err = regression.Sweep(ctx, env.Prefs.Params(), cases, *parallel, func(_ regression.Case, _ kernels.Result) {
			done++
			fmt.Fprintf(md.Output, "\r%d/%d", done, len(cases))
		})
		fmt.Fprint(md.Output, "\r")
		return err
	})
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		fmt.Fprintln(md.Output, r)
		if !r.Pass() {
			failed++
		}
	}

	if failed > 0 {
		return curated.Errorf(runsFailed, failed, len(results))
	}

	return nil
}

func step(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	n := md.AddInt("n", 8, "size of the kernel (bytes, halfwords or columns)")
	m := md.AddInt("m", 0, "number of rows for mxv and spmv (default n)")
	trace := md.AddBool("trace", true, "write trace for every instruction")

	md.AdditionalHelp("Press SPACE or RETURN to run the next block, C to run to the end, Q to quit.")

	if ok, err := c.parse(md); !ok {
		return err
	}

	if !easyterm.IsTerminal(os.Stdin) {
		return curated.Errorf(noTerminal, md)
	}

	f, err := fixture(md, *n, *m)
	if err != nil {
		return err
	}

	sim, err := c.simulator(md.Output, *trace)
	if err != nil {
		return err
	}

	term, err := easyterm.Open("", md.Output)
	if err != nil {
		return err
	}
	defer term.Close()

	stepping := true
	r := kernels.Run(sim, f, func(next program.Label) (program.State, error) {
		if !stepping {
			return program.Running, nil
		}

		term.Print("[%s] %s > ", next, sim.Counters)
		for {
			k, err := term.ReadKey()
			if err != nil {
				return program.Ending, err
			}
			switch k {
			case easyterm.KeySpace, easyterm.KeyCarriageReturn, '\n':
				term.Print("\n")
				return program.Running, nil
			case 'c', 'C':
				term.Print("\n")
				stepping = false
				return program.Running, nil
			case 'q', 'Q', easyterm.KeyCtrlC, easyterm.KeyCtrlD:
				term.Print("\n")
				return program.Ending, nil
			}
		}
	})

	fmt.Fprintln(md.Output, r)

	return r.Err
}

func runScript(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	trace := md.AddBool("trace", false, "write trace for every instruction")
	dot := md.AddString("dot", "", "write graphviz graph of the machine state after the script")

	if ok, err := c.parse(md); !ok {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf(oneScript, md)
	}

	sim, err := c.simulator(md.Output, *trace)
	if err != nil {
		return err
	}

	scr := script.NewScript(sim, md.Output)
	defer scr.Close()

	if err := scr.RunFile(ctx, md.GetArg(0)); err != nil {
		return err
	}

	if *dot != "" {
		return dump(*dot, sim)
	}

	return nil
}
