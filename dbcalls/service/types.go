package service

type FixInput struct {
	URL    string `json:"url,omitempty" description:"file path or AFS URL to migrate (default script.js)"`
	DryRun bool   `json:"dryRun,omitempty" description:"preview the rewrite without writing the file"`
}

// RuleStat reports how many times a single rule matched during one pass.
type RuleStat struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

type FixOutput struct {
	URL     string     `json:"url"`
	Changed bool       `json:"changed"`
	Edits   int        `json:"edits"`
	Rules   []RuleStat `json:"rules,omitempty"`
	Diff    string     `json:"diff,omitempty"`
	Written bool       `json:"written"`
}
