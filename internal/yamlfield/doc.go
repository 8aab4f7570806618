// Package yamlfield provides the addressable view of a parsed pipeline YAML
// tree that the plan-creation engine works on.
//
// A [Field] is a named value inside a mapping (`stages: [...]`, `step: {...}`);
// a [Node] is the value itself. Every node carries a UUID that is stable for
// the lifetime of the parsed tree: mappings may pin it with an explicit
// `__uuid` key, every other node receives a generated one at parse time. The
// engine uses the UUID of a field's node as the field's identity.
//
// Usage:
//
//	root, err := yamlfield.Parse(data)
//	// root.Name == "pipeline"
//	stages := root.Node.Field("stages")
//	for _, el := range stages.Node.Elements() {
//	    for _, f := range el.Fields() {
//	        fmt.Println(f.FQN(), f.ID())
//	    }
//	}
package yamlfield
