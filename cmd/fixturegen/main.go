// cmd/fixturegen/main.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// This binary is a code-generation tool.
//
// It reads a JSON specification describing a struct type and where each of its
// fields comes from, then generates a fixture.Builder for it: a type embedding
// fixture.Base whose Build method resolves nested fields through the fixture
// context and assigns literal defaults.
//
// Key behaviors:
// - Reads spec JSON: package, builder, typeName, implType, aliases, fields
// - Locates the "owner" Go file (the file containing the go:generate for cmd/fixturegen) in the same directory
// - Reuses the owner's imports that generated code actually references
// - Ensures the fixture package is imported as identifier `fixture`
// - gofmt-formats the output and writes it atomically (temp file + rename)

// defaultFixtureImport is used when neither the owner file nor the spec
// provides an import for the fixture package.
const defaultFixtureImport = "github.com/sghaida/ofixture/fixture"

// Field describes how one struct field is populated.
//
// Exactly one of Create, Many or Value must be set.
type Field struct {
	// Field is the exported struct field name.
	Field string `json:"field"`

	// Type is the Go type of the field, or the element type when Many is set.
	Type string `json:"type"`

	// Create names the fixture type resolved into the field.
	Create string `json:"create"`

	// Many names the fixture type resolved into a []Type field.
	Many string `json:"many"`

	// Size is the collection length for Many; 0 lets the fixture pick.
	Size int `json:"size"`

	// Value is a Go expression assigned verbatim.
	Value string `json:"value"`
}

// Imports defines fallback import paths for the generated code.
type Imports struct {
	// Fixture overrides the import path of the fixture package.
	Fixture string `json:"fixture"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string `json:"package"`

	// Builder is the generated type name; NewBuilder is its constructor.
	Builder string `json:"builder"`

	// TypeName is the fixture type name the builder registers under.
	TypeName string `json:"typeName"`

	// ImplType is the struct built; Build returns *ImplType.
	ImplType string `json:"implType"`

	Aliases []string `json:"aliases"`
	Imports Imports  `json:"imports"`
	Fields  []Field  `json:"fields"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec        Spec
	ImportsList []ImportSpec
}

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("fixturegen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to type.fixture.json")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: fixturegen -spec <file.fixture.json> -out <file.gen.go>")
		return 2
	}

	specBytes, err := os.ReadFile(*specPath)
	must(err)

	var spec Spec
	must(json.Unmarshal(specBytes, &spec))

	validateSpec(&spec)

	generatedFilePath := filepath.Clean(*outPath)
	packageDir := filepath.Dir(generatedFilePath)

	ownerGoFilePath, err := findOwnerGoGenerateFile(packageDir)
	if err != nil {
		// Without an owner file the fixture import still comes from the spec or the default.
		ownerGoFilePath = ""
	}

	data := templateData{
		Spec:        spec,
		ImportsList: resolveImports(ownerGoFilePath, &spec),
	}

	src, err := render(data)
	must(err)

	must(writeFileAtomic(generatedFilePath, src, 0o644))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	requireNonEmpty("builder", spec.Builder)
	requireNonEmpty("typeName", spec.TypeName)
	requireNonEmpty("implType", spec.ImplType)

	if len(missingFields) > 0 {
		panic(fmt.Errorf("spec missing required fields: %v", missingFields))
	}

	seenFields := make(map[string]struct{}, len(spec.Fields))

	for _, f := range spec.Fields {
		if f.Field == "" {
			panic(fmt.Errorf("each field must have a name; got: %+v", f))
		}
		if _, ok := seenFields[f.Field]; ok {
			panic(fmt.Errorf("duplicate field: %s", f.Field))
		}
		seenFields[f.Field] = struct{}{}

		sources := 0
		for _, s := range []string{f.Create, f.Many, f.Value} {
			if s != "" {
				sources++
			}
		}
		if sources != 1 {
			panic(fmt.Errorf("field %s must set exactly one of create/many/value", f.Field))
		}
		if (f.Create != "" || f.Many != "") && f.Type == "" {
			panic(fmt.Errorf("field %s resolves a fixture type and needs a Go type", f.Field))
		}
		if f.Size < 0 {
			panic(fmt.Errorf("field %s has negative size %d", f.Field, f.Size))
		}
	}
}

// findOwnerGoGenerateFile finds the Go source file in packageDir that contains a go:generate
// directive invoking cmd/fixturegen.
//
// This is used to discover the owner file’s imports so generated code matches local style.
func findOwnerGoGenerateFile(packageDir string) (string, error) {
	dirEntries, err := os.ReadDir(packageDir)
	if err != nil {
		return "", err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, fileName)
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			// Best-effort: unreadable file shouldn’t break generation.
			continue
		}

		if bytes.Contains(fileBytes, []byte("go:generate")) && bytes.Contains(fileBytes, []byte("cmd/fixturegen")) {
			return filePath, nil
		}
	}

	return "", fmt.Errorf("could not find owner file with go:generate invoking cmd/fixturegen in %s", packageDir)
}

// readImportsFromFile parses imports from a Go file.
func readImportsFromFile(goFilePath string) ([]ImportSpec, error) {
	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var imports []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}

	return imports, nil
}

func ensureImport(imports *[]ImportSpec, required ImportSpec) {
	for _, existing := range *imports {
		if existing.Path == required.Path {
			// Don’t duplicate the path; keep existing alias as-is.
			return
		}
	}
	*imports = append(*imports, required)
}

func importDefaultIdent(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(importPath))
}

// importIdent returns the identifier generated code uses for imp.
func importIdent(imp ImportSpec) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	return importDefaultIdent(imp.Path)
}

// referencedIdents collects package identifiers used by the built type and
// by field types and values. Only the left side of a selector counts, so text
// inside string literals is ignored. Expressions that do not parse contribute
// nothing; format.Source rejects them later.
func referencedIdents(spec *Spec) map[string]struct{} {
	idents := make(map[string]struct{})
	collect := func(src string) {
		if strings.TrimSpace(src) == "" {
			return
		}
		expr, err := parser.ParseExpr(src)
		if err != nil {
			return
		}
		ast.Inspect(expr, func(n ast.Node) bool {
			if sel, ok := n.(*ast.SelectorExpr); ok {
				if x, ok := sel.X.(*ast.Ident); ok {
					idents[x.Name] = struct{}{}
				}
			}
			return true
		})
	}
	collect(spec.ImplType)
	for _, f := range spec.Fields {
		collect(f.Type)
		collect(f.Value)
	}
	return idents
}

// resolveImports builds the final imports list for the generated file.
//
// Rules:
// - Keep owner imports only when field types or values reference them (unused imports do not compile)
// - Always provide a usable `fixture` identifier:
//   - an owner import already named `fixture`, OR
//   - spec.imports.fixture, OR
//   - the default fixture import path.
func resolveImports(ownerFilePath string, spec *Spec) []ImportSpec {
	var importsFromOwner []ImportSpec
	if strings.TrimSpace(ownerFilePath) != "" {
		parsedOwnerImports, err := readImportsFromFile(ownerFilePath)
		if err == nil {
			importsFromOwner = parsedOwnerImports
		}
	}

	used := referencedIdents(spec)
	used["fixture"] = struct{}{}

	finalImports := make([]ImportSpec, 0, len(importsFromOwner)+1)
	hasFixture := false
	for _, imp := range importsFromOwner {
		ident := importIdent(imp)
		if _, ok := used[ident]; !ok {
			continue
		}
		if ident == "fixture" {
			hasFixture = true
		}
		ensureImport(&finalImports, imp)
	}

	if hasFixture {
		return finalImports
	}

	fixturePath := defaultFixtureImport
	if strings.TrimSpace(spec.Imports.Fixture) != "" {
		fixturePath = strings.TrimSpace(spec.Imports.Fixture)
	}

	alias := ""
	if importDefaultIdent(fixturePath) != "fixture" {
		alias = "fixture"
	}
	ensureImport(&finalImports, ImportSpec{Alias: alias, Path: fixturePath})
	return finalImports
}

// render executes the template and gofmt-formats the result.
func render(data templateData) ([]byte, error) {
	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}
	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

// genTemplate is the Go source template used to generate the builder code.
var genTemplate = template.Must(
	template.New("fixturegen").Parse(`// Code generated by fixturegen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Spec.Builder}} builds *{{.Spec.ImplType}} values for the {{printf "%q" .Spec.TypeName}} fixture type.
type {{.Spec.Builder}} struct {
	fixture.Base
}

// New{{.Spec.Builder}} returns a builder registered as {{printf "%q" .Spec.TypeName}}.
func New{{.Spec.Builder}}() *{{.Spec.Builder}} {
	b := &{{.Spec.Builder}}{Base: fixture.NewBase({{printf "%q" .Spec.TypeName}})}
	{{- range .Spec.Aliases}}
	b.CreateAlias({{printf "%q" .}})
	{{- end}}
	return b
}

// Build implements fixture.Builder.
func (b *{{.Spec.Builder}}) Build(ctx fixture.Context) (any, error) {
	v := &{{.Spec.ImplType}}{}
	{{- range .Spec.Fields}}
	{{- if .Create}}
	{
		dep, err := fixture.Create[{{.Type}}](ctx, {{printf "%q" .Create}})
		if err != nil {
			return nil, err
		}
		v.{{.Field}} = dep
	}
	{{- else if .Many}}
	{
		deps, err := fixture.CreateMany[{{.Type}}](ctx, {{printf "%q" .Many}}, {{.Size}})
		if err != nil {
			return nil, err
		}
		v.{{.Field}} = deps
	}
	{{- else}}
	v.{{.Field}} = {{.Value}}
	{{- end}}
	{{- end}}
	return v, nil
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

// must panics if err is non-nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
