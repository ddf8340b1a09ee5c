// Package config defines the Configuration Result (spec §3, §6): the
// JSON-serializable output record the core emits, owned exclusively by the
// Orchestrator until it is handed off.
//
// Grounded on internal/index.FullDependencyIndex.Encode()'s
// json.MarshalIndent idiom (that file has since been deleted along with
// the rest of the Bazel-coupled index package — see DESIGN.md — but the
// marshal-to-writer shape it used is kept here).
package config

import (
	"encoding/json"
	"io"
	"strings"
)

// Result is the fixed output shape spec §6 names. The field set is fixed;
// downstream collaborators treat unknown fields as opaque, so no field is
// ever added speculatively here.
type Result struct {
	Name            string   `json:"name"`
	Folder          string   `json:"folder"`
	TopModule       string   `json:"top_module"`
	Files           []string `json:"files"`
	SimFiles        []string `json:"sim_files"`
	IncludeDirs     []string `json:"include_dirs"`
	Repository      string   `json:"repository"`
	LanguageVersion string   `json:"language_version"`
	ExtraFlags      []string `json:"extra_flags"`
	March           string   `json:"march"`
	TwoMemory       bool     `json:"two_memory"`
	IsSimulable     bool     `json:"is_simulable"`
	PreScript       string   `json:"pre_script,omitempty"`
}

// DefaultMarch is the placeholder spec §6 names for downstream toolchains
// that haven't run yet.
const DefaultMarch = "rv32i"

// New fills in the fixed defaults (march, an empty repository placeholder,
// empty extra_flags) and leaves the rest to the caller.
func New(name, folder string) Result {
	return Result{
		Name:        name,
		Folder:      folder,
		March:       DefaultMarch,
		ExtraFlags:  []string{},
		SimFiles:    []string{},
		IncludeDirs: []string{},
	}
}

// MaxFailureNoteLogLen caps how much of a failure log FailureNote embeds,
// so one adversarial repository's verbose compiler chatter doesn't
// balloon the emitted Configuration Result.
const MaxFailureNoteLogLen = 4000

// FailureNote formats a PreScript value for a failed run: prefix plus the
// tail of the last captured compiler log. Spec §7 requires the last log
// of a failed attempt be carried in an audit trail; PreScript is the one
// free-text field the fixed output shape (spec §6) provides for it, so a
// failed backend run reports through it rather than silently returning
// is_simulable=false with no explanation.
func FailureNote(prefix, log string) string {
	log = strings.TrimSpace(log)
	if log == "" {
		return prefix
	}
	if len(log) > MaxFailureNoteLogLen {
		log = "..." + log[len(log)-MaxFailureNoteLogLen:]
	}
	return prefix + ": " + log
}

// Encode writes the result as indented JSON, matching the teacher's
// indexer output convention.
func (r Result) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
