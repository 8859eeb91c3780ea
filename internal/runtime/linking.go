package runtime

// The linking surface: named external helpers the backend resolves against
// a host-provided symbol table at load time. rocc's own
// in-process execution engine (internal/mirexec) links none of them: it
// implements println and toString directly and has no counterpart for the
// others. The names are fixed so a real native backend can emit calls to
// them by name.
const (
	SymPrintln         = "myPrintln"
	SymVTableFactory   = "myVTableFactory"
	SymAddVTableMapping = "addVTableMapping"
	SymInt32ToString   = "myInt32ToString"
	SymInitInt32       = "myInitInt32"
	SymInitRawString   = "myInitRawString"
	SymDecrementRef    = "myDecrementRef"
)

// InitOrder lists the built-in types' vtable initializers in registration
// order. The synthesized main does not call them: compiler.Compile
// registers runtime.BuiltinVtables directly, and the textasm backend only
// prints this list in its header.
var InitOrder = []string{SymInitInt32, SymInitRawString}
