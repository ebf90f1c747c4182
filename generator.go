package sitesearch

// Generator identifies the static site generator that built a page.
type Generator string

// Known site generators.
const (
	GeneratorUnknown    Generator = ""
	GeneratorDocusaurus Generator = "docusaurus"
	GeneratorMkDocs     Generator = "mkdocs"
	GeneratorSphinx     Generator = "sphinx"
	GeneratorVuePress   Generator = "vuepress"
	GeneratorVitePress  Generator = "vitepress"
	GeneratorGitBook    Generator = "gitbook"
	GeneratorNextra     Generator = "nextra"
)

// GeneratorDetector identifies the generator of a built HTML page.
type GeneratorDetector interface {
	// Detect returns GeneratorUnknown if the generator cannot be determined.
	Detect(html string) Generator
}
