// Package model defines the entity tree produced by extraction:
// Repository → Module → {Function, Class → Method} → Parameter.
//
// Entities are immutable once assembled. Filters build new trees and may
// share unmodified entities; no entity is edited after creation.
package model

// Repository is the root of the entity tree for one analyzed project.
type Repository struct {
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	PypiTag       string   `json:"pypi_tag"`
	GitCommitHash string   `json:"git_commit_hash"`
	Modules       []Module `json:"modules"`
}

// Module is one Python source file. Its functions and classes are exactly
// the declarations at the file's outermost lexical scope, in source order.
type Module struct {
	Name      string     `json:"name"`
	FilePath  string     `json:"file_path"`
	Functions []Function `json:"functions"`
	Classes   []Class    `json:"classes"`
}

// Function is a module-level callable.
type Function struct {
	Identifier string      `json:"identifier"`
	Parameters []Parameter `json:"parameters"`
	// Annotations holds the decorator lines attached to the declaration,
	// verbatim and in source order, newline-joined. Empty when undecorated.
	Annotations   string  `json:"annotations"`
	Return        *string `json:"return"`
	Body          string  `json:"body"`
	Signature     string  `json:"signature"`
	FullSignature string  `json:"full_signature"`
	File          string  `json:"file"`
}

// Class is a class declared at module level. Superclasses are kept as
// written and never resolved against other entities.
type Class struct {
	Identifier   string   `json:"identifier"`
	Methods      []Method `json:"methods"`
	Superclasses []string `json:"superclasses"`
	Fields       []Field  `json:"fields"`
	File         string   `json:"file"`
}

// Field is a class-level attribute with an optional declared type.
type Field struct {
	Name string  `json:"name"`
	Type *string `json:"type"`
}

// Method is a callable owned by a class. Constructor marks the class
// initializer, detected by identifier, not by position.
type Method struct {
	Identifier    string      `json:"identifier"`
	Parameters    []Parameter `json:"parameters"`
	Annotations   string      `json:"annotations"`
	Return        *string     `json:"return"`
	Body          string      `json:"body"`
	Signature     string      `json:"signature"`
	FullSignature string      `json:"full_signature"`
	Constructor   bool        `json:"constructor"`
}

// Parameter is one declared parameter. LineNumber and ColOffset are
// 1-indexed positions of the parameter in the original source.
type Parameter struct {
	Identifier string  `json:"identifier"`
	Type       *string `json:"type"`
	LineNumber int     `json:"line_number"`
	ColOffset  int     `json:"col_offset"`
}
