package typesys

// ABI is the target data model used for basic-type sizes/alignment (§4.2:
// "the implementation must make these tunable per target without changing
// the public API"). LP64 (Linux/macOS amd64/arm64) is the default.
type ABI struct {
	Name        string
	PointerSize int
	Sizes       map[string]int
	Alignments  map[string]int
}

// basicAliases maps the fixed-width alias spellings onto their canonical
// basic-type name, per §4.2's alias table (u8/u16/.../f32/f64).
var basicAliases = map[string]string{
	"u8": "uint8_t", "u16": "uint16_t", "u32": "uint32_t", "u64": "uint64_t",
	"i8": "int8_t", "i16": "int16_t", "i32": "int32_t", "i64": "int64_t",
	"f32": "float", "f64": "double",
}

func canonicalBasic(name string) (string, bool) {
	if alias, ok := basicAliases[name]; ok {
		return alias, true
	}
	if _, ok := lp64Sizes[name]; ok {
		return name, true
	}
	return name, false
}

// lp64Sizes/lp64Align hold the common 64-bit LP64 sizes §4.2 names.
var lp64Sizes = map[string]int{
	"void": 0, "char": 1, "signed char": 1, "unsigned char": 1, "_Bool": 1, "bool": 1,
	"short": 2, "unsigned short": 2, "short int": 2,
	"int": 4, "unsigned int": 4, "unsigned": 4, "signed": 4,
	"long": 8, "unsigned long": 8, "long int": 8,
	"long long": 8, "unsigned long long": 8,
	"float": 4, "double": 8, "long double": 16,
	"int8_t": 1, "uint8_t": 1, "int16_t": 2, "uint16_t": 2,
	"int32_t": 4, "uint32_t": 4, "int64_t": 8, "uint64_t": 8,
	"size_t": 8, "ssize_t": 8, "ptrdiff_t": 8, "intptr_t": 8, "uintptr_t": 8,
}

var lp64Align = map[string]int{
	"void": 1, "char": 1, "signed char": 1, "unsigned char": 1, "_Bool": 1, "bool": 1,
	"short": 2, "unsigned short": 2, "short int": 2,
	"int": 4, "unsigned int": 4, "unsigned": 4, "signed": 4,
	"long": 8, "unsigned long": 8, "long int": 8,
	"long long": 8, "unsigned long long": 8,
	"float": 4, "double": 8, "long double": 16,
	"int8_t": 1, "uint8_t": 1, "int16_t": 2, "uint16_t": 2,
	"int32_t": 4, "uint32_t": 4, "int64_t": 8, "uint64_t": 8,
	"size_t": 8, "ssize_t": 8, "ptrdiff_t": 8, "intptr_t": 8, "uintptr_t": 8,
}

// LP64 is the default ABI: 64-bit pointers/longs, matching most Linux/macOS
// targets.
var LP64 = ABI{Name: "LP64", PointerSize: 8, Sizes: lp64Sizes, Alignments: lp64Align}

// ILP32 models a 32-bit target: 32-bit pointers/longs.
var ILP32 = ABI{
	Name:        "ILP32",
	PointerSize: 4,
	Sizes:       overrideSizes(lp64Sizes, map[string]int{"long": 4, "unsigned long": 4, "long int": 4, "size_t": 4, "ssize_t": 4, "ptrdiff_t": 4, "intptr_t": 4, "uintptr_t": 4}),
	Alignments:  overrideSizes(lp64Align, map[string]int{"long": 4, "unsigned long": 4, "long int": 4, "size_t": 4, "ssize_t": 4, "ptrdiff_t": 4, "intptr_t": 4, "uintptr_t": 4}),
}

// LLP64 models the Windows x64 data model: 64-bit pointers, 32-bit long.
var LLP64 = ABI{
	Name:        "LLP64",
	PointerSize: 8,
	Sizes:       overrideSizes(lp64Sizes, map[string]int{"long": 4, "unsigned long": 4, "long int": 4}),
	Alignments:  overrideSizes(lp64Align, map[string]int{"long": 4, "unsigned long": 4, "long int": 4}),
}

func overrideSizes(base map[string]int, overrides map[string]int) map[string]int {
	out := make(map[string]int, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// printfFormats is the companion printf conversion specifier table (§4.2,
// "used by downstream emitters, exposed via get_printf_format").
var printfFormats = map[string]string{
	"char": "%c", "signed char": "%hhd", "unsigned char": "%hhu", "_Bool": "%d", "bool": "%d",
	"short": "%hd", "unsigned short": "%hu", "short int": "%hd",
	"int": "%d", "unsigned int": "%u", "unsigned": "%u", "signed": "%d",
	"long": "%ld", "unsigned long": "%lu", "long int": "%ld",
	"long long": "%lld", "unsigned long long": "%llu",
	"float": "%f", "double": "%f", "long double": "%Lf",
	"int8_t": "%hhd", "uint8_t": "%hhu", "int16_t": "%hd", "uint16_t": "%hu",
	"int32_t": "%d", "uint32_t": "%u", "int64_t": "%lld", "uint64_t": "%llu",
	"size_t": "%zu", "ssize_t": "%zd", "ptrdiff_t": "%td",
	"intptr_t": "%zd", "uintptr_t": "%zu",
}

// GetPrintfFormat resolves the printf conversion specifier for a fully
// classified type (§4.2): pointers map to %p, enums to %d, unrecognized
// basics to %x.
func (m *Manager) GetPrintfFormat(name string) string {
	rt := m.resolveForLayout(name)
	switch {
	case rt.IsPointer:
		return "%p"
	case rt.IsEnum:
		return "%d"
	case rt.IsBasic:
		if f, ok := printfFormats[rt.BaseType]; ok {
			return f
		}
		return "%x"
	default:
		return "%x"
	}
}
