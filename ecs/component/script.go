package component

// Script attaches a tengo behaviour script to an entity.
type Script struct {
	Path string
	// Vars are read by the script through engine.get_var(name, default).
	Vars map[string]any
}

var ScriptComponent = NewComponent[Script]()
