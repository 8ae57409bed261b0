package emit

// Scope says what kind of construct encloses the node being rendered.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeNamespace
	ScopeClass
)

func (s Scope) String() string {
	switch s {
	case ScopeNamespace:
		return "namespace"
	case ScopeClass:
		return "class"
	default:
		return "none"
	}
}

// State is threaded through rendering by value. Callees derive copies with
// the fields they need changed and never write back.
type State struct {
	// Path holds enclosing namespace names, then the class name inside a class.
	Path   []string
	Scope  Scope
	Module *Module
	// Body is the buffer statements are currently appended to.
	Body BufferID
}

// into returns a copy writing to buf.
func (st State) into(buf BufferID) State {
	st.Body = buf
	return st
}

// enter returns a copy one level deeper.
func (st State) enter(scope Scope, name string) State {
	path := make([]string, 0, len(st.Path)+1)
	path = append(path, st.Path...)
	st.Path = append(path, name)
	st.Scope = scope
	return st
}

// class returns the name of the enclosing class, if any.
func (st State) class() string {
	if st.Scope != ScopeClass || len(st.Path) == 0 {
		return ""
	}
	return st.Path[len(st.Path)-1]
}

// local returns a copy for rendering statements of a function body.
func (st State) local() State {
	st.Scope = ScopeNone
	return st
}
