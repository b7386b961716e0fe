// Package extract maps Python source text onto the entity model using a
// tree-sitter syntax tree. Only outermost declarations are promoted to
// module level; the source is never evaluated or type-checked.
package extract

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/typeminer/typeminer/internal/model"
)

// constructorName is Python's reserved initializer identifier.
const constructorName = "__init__"

// Extractor parses one source file's text into a Module.
type Extractor struct {
	language *sitter.Language
}

// NewExtractor creates an extractor for the Python grammar.
func NewExtractor() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// ExtractModule parses source text into a Module. A file whose tree
// contains parse errors yields a *SyntaxError; the caller decides how to
// surface it. The path is recorded as given and never rewritten.
func (e *Extractor) ExtractModule(path, source string) (model.Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.language)

	src := []byte(source)
	tree := parser.Parse(src, nil)
	if tree == nil {
		return model.Module{}, &SyntaxError{Path: path, Line: 1, Column: 1, Msg: "parser produced no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := findSyntaxError(root)
		return model.Module{}, &SyntaxError{
			Path:   path,
			Line:   int(bad.StartPosition().Row) + 1,
			Column: int(bad.StartPosition().Column) + 1,
			Msg:    "invalid syntax near " + nodeSummary(bad, src),
		}
	}

	module := model.Module{
		Name:      moduleName(path),
		FilePath:  path,
		Functions: []model.Function{},
		Classes:   []model.Class{},
	}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "function_definition":
			module.Functions = append(module.Functions, e.extractFunction(child, src, "", path))
		case "class_definition":
			module.Classes = append(module.Classes, e.extractClass(child, src, path))
		case "decorated_definition":
			annotations := decoratorBlock(child, src)
			def := child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
			switch def.Kind() {
			case "function_definition":
				module.Functions = append(module.Functions, e.extractFunction(def, src, annotations, path))
			case "class_definition":
				module.Classes = append(module.Classes, e.extractClass(def, src, path))
			}
		}
	}
	return module, nil
}

// callable holds the fields shared by functions and methods before they
// are shaped into their model types.
type callable struct {
	identifier    string
	parameters    []model.Parameter
	annotations   string
	ret           *string
	body          string
	signature     string
	fullSignature string
}

func (e *Extractor) extractCallable(node *sitter.Node, src []byte, annotations string) callable {
	var c callable
	c.annotations = annotations

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		c.identifier = nodeText(nameNode, src)
	}
	c.parameters = e.extractParameters(node.ChildByFieldName("parameters"), src)
	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		ret := nodeText(retNode, src)
		c.ret = &ret
	}
	c.body = bodyText(node, src)
	c.signature = model.Signature(c.identifier, c.parameters, c.ret)
	c.fullSignature = model.FullSignature(c.annotations, c.signature)
	return c
}

func (e *Extractor) extractFunction(node *sitter.Node, src []byte, annotations, path string) model.Function {
	c := e.extractCallable(node, src, annotations)
	return model.Function{
		Identifier:    c.identifier,
		Parameters:    c.parameters,
		Annotations:   c.annotations,
		Return:        c.ret,
		Body:          c.body,
		Signature:     c.signature,
		FullSignature: c.fullSignature,
		File:          path,
	}
}

func (e *Extractor) extractMethod(node *sitter.Node, src []byte, annotations string) model.Method {
	c := e.extractCallable(node, src, annotations)
	return model.Method{
		Identifier:    c.identifier,
		Parameters:    c.parameters,
		Annotations:   c.annotations,
		Return:        c.ret,
		Body:          c.body,
		Signature:     c.signature,
		FullSignature: c.fullSignature,
		Constructor:   c.identifier == constructorName,
	}
}

// extractClass extracts a class declaration: methods from the direct
// children of the class body, superclasses verbatim from the argument
// list, and field descriptors from class-level assignments.
func (e *Extractor) extractClass(node *sitter.Node, src []byte, path string) model.Class {
	cls := model.Class{
		Methods:      []model.Method{},
		Superclasses: []string{},
		Fields:       []model.Field{},
		File:         path,
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Identifier = nodeText(nameNode, src)
	}

	if args := node.ChildByFieldName("superclasses"); args != nil {
		for i := uint(0); i < args.NamedChildCount(); i++ {
			arg := args.NamedChild(i)
			// metaclass=... and friends are not superclasses
			if arg.Kind() == "keyword_argument" {
				continue
			}
			cls.Superclasses = append(cls.Superclasses, nodeText(arg, src))
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		stmt := body.Child(i)
		switch stmt.Kind() {
		case "function_definition":
			cls.Methods = append(cls.Methods, e.extractMethod(stmt, src, ""))
		case "decorated_definition":
			def := stmt.ChildByFieldName("definition")
			if def != nil && def.Kind() == "function_definition" {
				cls.Methods = append(cls.Methods, e.extractMethod(def, src, decoratorBlock(stmt, src)))
			}
		case "expression_statement":
			cls.Fields = append(cls.Fields, classFields(stmt, src)...)
		}
	}
	return cls
}

// extractParameters walks a parameters node left to right. Declared types
// are taken verbatim from annotations, never inferred. Bare "*" and "/"
// separators are not parameters.
func (e *Extractor) extractParameters(paramsNode *sitter.Node, src []byte) []model.Parameter {
	params := []model.Parameter{}
	if paramsNode == nil {
		return params
	}

	for i := uint(0); i < paramsNode.NamedChildCount(); i++ {
		child := paramsNode.NamedChild(i)
		switch child.Kind() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
			params = append(params, parameterAt(child, src, nil))
		case "typed_parameter":
			nameNode := child.NamedChild(0)
			if nameNode == nil {
				continue
			}
			params = append(params, parameterAt(nameNode, src, child.ChildByFieldName("type")))
		case "default_parameter", "typed_default_parameter":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			params = append(params, parameterAt(nameNode, src, child.ChildByFieldName("type")))
		}
	}
	return params
}

// parameterAt builds a Parameter from its name node and optional type
// annotation node. Positions are 1-indexed to match editor cursors.
func parameterAt(nameNode *sitter.Node, src []byte, typeNode *sitter.Node) model.Parameter {
	p := model.Parameter{
		Identifier: nodeText(nameNode, src),
		LineNumber: int(nameNode.StartPosition().Row) + 1,
		ColOffset:  int(nameNode.StartPosition().Column) + 1,
	}
	if typeNode != nil {
		t := nodeText(typeNode, src)
		p.Type = &t
	}
	return p
}

// bodyText returns the exact source text of a callable's body, excluding
// the declaration header. When the block starts on its own line the text
// begins at that line's first byte, preserving original indentation;
// one-liner bodies start at the block itself.
func bodyText(defNode *sitter.Node, src []byte) string {
	block := defNode.ChildByFieldName("body")
	if block == nil {
		return ""
	}

	start := block.StartByte()
	col := uint(block.StartPosition().Column)
	lineStart := start - col
	if strings.TrimSpace(string(src[lineStart:start])) == "" {
		start = lineStart
	}
	return string(src[start:block.EndByte()])
}

// decoratorBlock renders the decorator lines of a decorated_definition
// verbatim, in source order, newline-joined.
func decoratorBlock(decorated *sitter.Node, src []byte) string {
	var decorators []string
	for i := uint(0); i < decorated.ChildCount(); i++ {
		child := decorated.Child(i)
		if child.Kind() == "decorator" {
			decorators = append(decorators, nodeText(child, src))
		}
	}
	return strings.Join(decorators, "\n")
}

// classFields extracts field descriptors from one class-level expression
// statement. Chained assignments (a = b = 1) yield one field per target.
func classFields(stmt *sitter.Node, src []byte) []model.Field {
	var fields []model.Field
	node := stmt.NamedChild(0)
	for node != nil && node.Kind() == "assignment" {
		left := node.ChildByFieldName("left")
		if left != nil && left.Kind() == "identifier" {
			field := model.Field{Name: nodeText(left, src)}
			if typeNode := node.ChildByFieldName("type"); typeNode != nil {
				t := nodeText(typeNode, src)
				field.Type = &t
			}
			fields = append(fields, field)
		}
		node = node.ChildByFieldName("right")
	}
	return fields
}

// findSyntaxError descends to the shallowest ERROR or MISSING node so the
// reported position points at the offending construct.
func findSyntaxError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.HasError() {
			return findSyntaxError(child)
		}
	}
	return node
}

// nodeSummary renders a short excerpt of a node for diagnostics.
func nodeSummary(node *sitter.Node, src []byte) string {
	if line := summaryLine(nodeText(node, src)); line != "" {
		return line
	}
	return node.Kind()
}

// summaryLine renders the first line of a node's text, truncated on a
// rune boundary so the excerpt stays valid UTF-8.
func summaryLine(text string) string {
	line := strings.SplitN(text, "\n", 2)[0]
	if len(line) > 40 {
		cut := 40
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = strings.TrimSpace(line[:cut]) + "…"
	}
	return strings.TrimSpace(line)
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return string(src[node.StartByte():node.EndByte()])
}

// moduleName derives the module name from its file path: the base name
// without extension, exactly as the file is named.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
