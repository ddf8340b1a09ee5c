package resolve

import (
	"sort"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/dedup"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/diagnostic"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

type fixHandler func(d diagnostic.Diagnostic, st *state, in Input) FixOutcome

// fixTable implements spec §9's "per-diagnostic fix dispatch" re-
// architecture: one pure handler per Kind, looked up by table instead of a
// long if/else chain.
var fixTable = map[diagnostic.Kind]fixHandler{
	diagnostic.MissingInclude:              fixMissingInclude,
	diagnostic.MissingModule:               fixMissingProvider,
	diagnostic.MissingPackage:              fixMissingProvider,
	diagnostic.MissingInterface:            fixMissingProvider,
	diagnostic.MissingType:                 fixMissingProvider,
	diagnostic.DuplicateDeclaration:        fixDuplicate,
	diagnostic.SyntaxErrorIn:               fixSyntaxError,
	diagnostic.UndefinedMacroIn:            fixBlacklistConsumer,
	diagnostic.ParamMismatchIn:             fixBlacklistConsumer,
	diagnostic.UnresolvablePackageImportIn: fixBlacklistConsumer,
	diagnostic.AmbiguousConditionalType:    fixAmbiguousConditional,
}

func applyFix(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	handler, ok := fixTable[d.Kind]
	if !ok {
		return NoProgress
	}
	return handler(d, st, in)
}

// fixMissingInclude searches the tree for a file with the given basename
// and adds its directory to the include-dir set. If no candidate exists,
// the include is unsatisfiable and the including file is blacklisted
// instead (spec §4.7 step 5, "Unsatisfiable include").
func fixMissingInclude(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	candidates := in.Universe.Basenames[d.IncludePath]
	if len(candidates) == 0 {
		if d.IncludingFile == "" || st.blacklist.Contains(d.IncludingFile) {
			return NoProgress
		}
		st.blacklist.Add(d.IncludingFile)
		return Blacklisted
	}
	sort.Strings(candidates)
	dir := dirOf(candidates[0])
	if st.includeDirs.Contains(dir) {
		return NoProgress
	}
	st.includeDirs.Add(dir)
	return AddedInclude
}

// fixMissingProvider searches the tree for a unit with the diagnostic's
// Name and adds its highest-path-quality-scoring provider file to the
// source list (spec §4.7 step 5, "Missing package / entity / interface /
// type").
func fixMissingProvider(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	if in.Universe.Table == nil {
		return NoProgress
	}
	providers := in.Universe.Table.Providers(d.Name)
	if len(providers) == 0 {
		return NoProgress
	}
	var candidateFiles []string
	for _, u := range providers {
		if !containsString(st.files, u.File) && !st.blacklist.Contains(u.File) {
			candidateFiles = append(candidateFiles, u.File)
		}
	}
	if len(candidateFiles) == 0 {
		return fixVHDLOrdering(d, st, in, providers)
	}
	sort.Slice(candidateFiles, func(i, j int) bool {
		si, sj := dedup.Score(candidateFiles[i]), dedup.Score(candidateFiles[j])
		if si != sj {
			return si > sj
		}
		return candidateFiles[i] < candidateFiles[j]
	})
	winner := candidateFiles[0]
	st.files = append(st.files, winner)
	st.dirty = true
	if in.Universe.NeedsPackageIncludeDir {
		st.includeDirs.Add(dirOf(winner))
	}
	return AddedProvider
}

// fixVHDLOrdering handles the case where every provider of the missing unit
// is already in the active file set: GHDL requires a package/entity to be
// analyzed before the file that references it, so a "not found" error with
// no new file to add means the provider is simply analyzed too late. Spec
// §4.8 VHDL step 3 repositions it via VHDLState.Constrain rather than
// rebuilding the whole order from scratch.
func fixVHDLOrdering(d diagnostic.Diagnostic, st *state, in Input, providers []hdl.Unit) FixOutcome {
	if in.Flavor != hdl.FlavorVHDL || st.vhdlState == nil || d.File == "" {
		return NoProgress
	}
	for _, u := range providers {
		if u.File == d.File || st.blacklist.Contains(u.File) || !containsString(st.files, u.File) {
			continue
		}
		st.vhdlState.Constrain(u.File, d.File)
		return AddedProvider
	}
	return NoProgress
}

// fixDuplicate keeps the file whose path scores highest per spec §4.9 and
// blacklists the others for this run.
func fixDuplicate(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	if in.Universe.Table == nil || d.Name == "" {
		if d.File != "" && !st.blacklist.Contains(d.File) {
			st.blacklist.Add(d.File)
			return Blacklisted
		}
		return NoProgress
	}
	providers := in.Universe.Table.Providers(d.Name)
	var present []string
	for _, u := range providers {
		if containsString(st.files, u.File) && !st.blacklist.Contains(u.File) {
			present = append(present, u.File)
		}
	}
	if len(present) < 2 {
		return NoProgress
	}
	kept, _ := dedup.BySymbol(map[string][]string{d.Name: present})
	keptSet := make(map[string]bool, len(kept))
	for _, f := range kept {
		keptSet[f] = true
	}
	progressed := false
	for _, f := range present {
		if !keptSet[f] {
			st.blacklist.Add(f)
			progressed = true
		}
	}
	if progressed {
		return Blacklisted
	}
	return NoProgress
}

// fixSyntaxError blacklists the offending file unless it is a package
// provider, in which case it is given one grace iteration before being
// blacklisted (spec §4.7 step 5: "their exclusion is deferred one
// iteration").
func fixSyntaxError(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	if d.File == "" || st.blacklist.Contains(d.File) {
		return NoProgress
	}
	if isPackageProvider(d.File, in.Universe.Table) && !st.deferred.Contains(d.File) {
		st.deferred.Add(d.File)
		return NoProgress
	}
	st.blacklist.Add(d.File)
	return Blacklisted
}

func isPackageProvider(file string, table *hdl.Table) bool {
	if table == nil {
		return false
	}
	for _, u := range table.ByFile[file] {
		if u.Kind == hdl.KindPackage {
			return true
		}
	}
	return false
}

// fixBlacklistConsumer blacklists the consuming file; when a ParentFile is
// also named, it is blacklisted instead, since the parent is the true
// cause (spec §4.7 step 5).
func fixBlacklistConsumer(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	target := d.File
	if d.ParentFile != "" {
		target = d.ParentFile
	}
	if target == "" || st.blacklist.Contains(target) {
		return NoProgress
	}
	st.blacklist.Add(target)
	return Blacklisted
}

// fixAmbiguousConditional default-selects a deterministic gating define
// (spec §4.7 step 5, Bluespec only). Nothing upstream overrides this
// choice and there is no interactive selection, so the Resolver never
// blocks waiting on input.
func fixAmbiguousConditional(d diagnostic.Diagnostic, st *state, in Input) FixOutcome {
	define := "PROCESSORCI_DEFAULT"
	if len(d.CandidateDefines) > 0 {
		candidates := append([]string(nil), d.CandidateDefines...)
		sort.Strings(candidates)
		define = candidates[0]
	}
	for _, existing := range st.defines {
		if existing == define {
			return NoProgress
		}
	}
	st.defines = append(st.defines, define)
	return AddedInclude
}
