// Command processorci is the thin CLI entry point: it wires flag parsing
// to flavor detection and the chosen backend, then writes the resulting
// Configuration Result as JSON.
//
// Grounded on the teacher's index/*/main.go commands: plain flag.FlagSet,
// log.Fatalf for setup failures, no CLI framework.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/backend/bluespec"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/backend/chisel"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/backend/verilog"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/backend/vhdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/config"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/scan"
)

func main() {
	repo := flag.String("repo", "", "Path to the repository to analyze")
	name := flag.String("name", "", "Repository name to record in the configuration result (defaults to the repo directory's base name)")
	flavorFlag := flag.String("flavor", "", "HDL flavor to assume: verilog, vhdl, chisel, bluespec (detected automatically when empty)")
	out := flag.String("out", "", "Path to write the JSON configuration result (stdout when empty)")
	repository := flag.String("repository", "", "Repository URL to record in the configuration result (defaults to -repo)")
	chiselTool := flag.String("chisel-build-tool", string(chisel.SBT), "Build tool for Chisel/SpinalHDL repositories: sbt or mill")
	flag.Parse()

	if *repo == "" {
		flag.Usage()
		log.Fatal("-repo is required")
	}

	repoName := *name
	if repoName == "" {
		repoName = defaultRepoName(*repo)
	}

	flavor, err := resolveFlavor(*repo, *flavorFlag)
	if err != nil {
		log.Fatalf("processorci: %v", err)
	}

	result, err := runBackend(context.Background(), flavor, *repo, repoName, chisel.BuildTool(*chiselTool))
	if err != nil {
		log.Fatalf("processorci: %v", err)
	}
	result.Repository = *repository
	if result.Repository == "" {
		result.Repository = *repo
	}

	writer := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("processorci: cannot write %s: %v", *out, err)
		}
		defer f.Close()
		if err := result.Encode(f); err != nil {
			log.Fatalf("processorci: %v", err)
		}
		return
	}
	if err := result.Encode(writer); err != nil {
		log.Fatalf("processorci: %v", err)
	}
}

func defaultRepoName(repo string) string {
	base := repo
	for len(base) > 1 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' {
			return base[i+1:]
		}
	}
	return base
}

func resolveFlavor(repo, flavorFlag string) (hdl.Flavor, error) {
	if flavorFlag != "" {
		flavor := hdl.Flavor(flavorFlag)
		if _, ok := scan.Extensions[flavor]; !ok {
			return "", errUnknownFlavor(flavorFlag)
		}
		return flavor, nil
	}
	flavor, _, err := scan.DetectFlavor(repo)
	if err != nil {
		return "", err
	}
	return flavor, nil
}

type errUnknownFlavor string

func (e errUnknownFlavor) Error() string { return "unknown flavor " + string(e) }

// runBackend dispatches to the flavor-specific backend. Every backend
// returns a Configuration Result even on a failed search (is_simulable
// false, pre_script noting why); only a setup error here (no sources,
// unreadable repository) is fatal, matching the exit-status contract.
func runBackend(ctx context.Context, flavor hdl.Flavor, repo, repoName string, chiselTool chisel.BuildTool) (config.Result, error) {
	switch flavor {
	case hdl.FlavorVHDL:
		return vhdl.Run(ctx, repo, repoName)
	case hdl.FlavorChisel:
		return chisel.Run(ctx, repo, repoName, chiselTool)
	case hdl.FlavorBluespec:
		return bluespec.Run(ctx, repo, repoName)
	default:
		return verilog.Run(ctx, repo, repoName)
	}
}
