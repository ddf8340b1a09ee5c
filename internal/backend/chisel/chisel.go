// Package chisel implements the Chisel/SpinalHDL flavor backend (spec
// §4.12, §6): it runs a build-tool invocation that emits Verilog into a
// known output directory, then falls through to the Verilog backend to
// analyze the emitted output. It also carries the multi-main-object
// disambiguation rule-list SPEC_FULL.md supplements from original_source/.
package chisel

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/backend/verilog"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/config"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/extract"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/graph"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hint"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/rank"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/scan"
)

// OutputDir is the known directory the build tool is expected to emit
// generated Verilog into (spec §6: "produced Verilog file in a known
// output directory").
const OutputDir = "generated"

// BuildTool names which tool drives generation. SBT is the CLI default;
// Run uses only the tool it is given and does not fall back to the other.
type BuildTool string

const (
	SBT  BuildTool = "sbt"
	Mill BuildTool = "mill"
)

func Universe(root string, files []string) (map[string]string, *hdl.Table, error) {
	table := hdl.NewTable()
	sources := make(map[string]string, len(files))
	extractFn := extract.ForFlavor(hdl.FlavorChisel)
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(root, f))
		if err != nil {
			continue
		}
		src := string(data)
		sources[f] = src
		result := extractFn(f, src)
		for _, u := range result.Units {
			table.AddUnit(u)
		}
		for _, inst := range result.Instantiations {
			table.AddInstantiation(inst.Parent, inst.Child)
		}
	}
	return sources, table, nil
}

// packageOf guesses a Scala file's package declaration, used to build
// the `runMain <package.Class>` argument.
var packageDeclRe = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)`)

func packageOf(src string) string {
	if m := packageDeclRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return ""
}

// MainClassCandidates returns, for every declaring file of every ranked
// candidate, the fully qualified `package.Class` a generator harness would
// invoke (the file's package declaration plus the candidate name). The
// only scoring rule is a bonus when the declaring file's path contains the
// candidate name (case-insensitive); reachability and `object ... extends
// App` main objects are not considered. Duplicate class names keep their
// first occurrence.
func MainClassCandidates(candidates []string, table *hdl.Table, sources map[string]string) []string {
	type scored struct {
		class string
		score int
	}
	var results []scored
	for _, name := range candidates {
		for _, u := range table.Providers(name) {
			pkg := packageOf(sources[u.File])
			class := name
			if pkg != "" {
				class = pkg + "." + name
			}
			score := 0
			if strings.Contains(strings.ToLower(u.File), strings.ToLower(name)) {
				score += 10
			}
			results = append(results, scored{class: class, score: score})
		}
	}
	out := make([]string, 0, len(results))
	seen := make(map[string]bool)
	// Highest score first, stable on input order otherwise (candidates is
	// already ranked, so ties preserve the Ranker's ordering).
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].score > results[j-1].score; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	for _, r := range results {
		if !seen[r.class] {
			seen[r.class] = true
			out = append(out, r.class)
		}
	}
	return out
}

// GenerateCommand builds the build-tool invocation (spec §6): `runMain
// <package.Class>` for SBT, `<module>.runMain <package.Class>` for Mill.
func GenerateCommand(tool BuildTool, mainClass, millModule string) compiler.Command {
	if tool == Mill {
		target := mainClass
		if millModule != "" {
			target = millModule + ".runMain " + mainClass
		}
		return compiler.Command{Binary: "mill", Args: []string{target}}
	}
	return compiler.Command{Binary: "sbt", Args: []string{"runMain " + mainClass}}
}

// Run drives generation for each main-class candidate in turn until one
// both runs cleanly and emits Verilog, then hands off to the Verilog
// backend to analyze the generated output (spec §6, §4.12).
func Run(ctx context.Context, root, repoName string, tool BuildTool) (config.Result, error) {
	scanResult, err := scan.Scan(root, hdl.FlavorChisel)
	if err != nil {
		return config.Result{}, err
	}

	sources, table, err := Universe(root, scanResult.Files)
	if err != nil {
		return config.Result{}, err
	}

	g := graph.FromTable(table)
	candidates := rank.Rank(rank.Context{Graph: g, Table: table, RepoName: repoName})
	candidates = hint.Rerank(ctx, repoName, candidates)
	mainClasses := MainClassCandidates(candidates, table, sources)

	outDir := filepath.Join(root, OutputDir)
	var lastLog string
	for _, class := range mainClasses {
		cmd := GenerateCommand(tool, class, "")
		cmd.Dir = root
		outcome := compiler.Run(ctx, cmd, nil)
		lastLog = outcome.Log
		if !outcome.Clean() {
			continue
		}
		if _, statErr := os.Stat(outDir); statErr != nil {
			continue
		}
		return verilog.Run(ctx, outDir, repoName)
	}

	out := config.New(repoName, filepath.Base(root))
	out.LanguageVersion = "chisel"
	out.IsSimulable = false
	out.PreScript = config.FailureNote(string(tool)+" generation failed for every candidate main class", lastLog)
	return out, nil
}
