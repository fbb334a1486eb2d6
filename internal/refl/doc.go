// Package refl is a runtime type/object model.
//
// It lets a program register value types, enumerations and classes, hold
// their values in a uniform type-erased container (Any), and read, write or
// invoke their members by name without compile-time knowledge of the
// concrete type.
//
// # Descriptors
//
// Every participating Go type has exactly one *Type descriptor, created on
// first request by TypeOf or TypeFor and memoized by reflect.Type, so pointer
// equality of descriptors is type equality. A descriptor is a tagged sum:
// Kind reports the variant and the As* accessors return the kind-specific
// payload (Arithmetic, Enum, Class, Pointer, Container) or false.
//
// Arithmetic, pointer, container, string and void descriptors bind their
// names in the process-wide registry as soon as they are created. Unnamed
// composites derive their names from their elements ("Person*", "int[]",
// "string:int{}") and move to the new name when an element is later named.
// Enums and classes are named by their builders (RegisterEnum,
// RegisterClass), which attach the member lists and bind the name exactly
// once. A named integer type is arithmetic until RegisterEnum seals it.
//
// # Values
//
// An Any is created with one of MakeCopy, MakeMove, MakeRef or MakeCref and
// carries an ownership Mode. Copy and Move values own their storage and free
// it on Release; Ref and ConstRef values borrow storage owned elsewhere, and
// ConstRef refuses every mutating operation. Operations that would take a
// copy of a type without a copy operation fail with ErrCapabilityMissing.
//
// # Lifecycle
//
// Registration is expected to finish during a single-threaded startup phase.
// The descriptor cache and registry are guarded by locks, but member lists
// are read without synchronization once committed, and Any values are not
// safe for concurrent use.
package refl
