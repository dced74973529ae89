package service

// DefaultTarget is the file rewritten when no URL is supplied, relative to the working directory.
const DefaultTarget = "script.js"

type Config struct {
	// Target is an AFS URL or plain path of the file to migrate (default script.js).
	Target  string `json:"target,omitempty"`
	UseData bool   `json:"useData,omitempty"`
	// LockTarget rejects requests naming any file other than Target.
	LockTarget bool `json:"lockTarget,omitempty"`

	// SedDiffBytes caps the rendered preview diff (default 8192).
	SedDiffBytes int `json:"sedDiffBytes,omitempty"`
	// SedMaxEditsPerFile caps how many changed hunks a preview reports (default 0 = unlimited).
	SedMaxEditsPerFile int `json:"sedMaxEditsPerFile,omitempty"`
}
