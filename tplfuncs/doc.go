// Package tplfuncs exposes the attribute sorter to Go templates as the
// sort_by_attribute function.
//
//	tmpl := template.New("page").Funcs(tplfuncs.FuncMap())
//
//	{{ range sort_by_attribute .People "name" }}{{ .Name }} {{ end }}
//	{{ range sort_by_attribute .People "name" .SortOptions }}{{ .Name }} {{ end }}
//
// The collection comes first, then the attribute, then an optional options
// mapping. html/template users can convert the map:
// htmltemplate.FuncMap(tplfuncs.FuncMap()).
package tplfuncs
