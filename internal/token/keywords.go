package token

var keywords = map[string]Kind{
	"alias":        KwAlias,
	"break":        KwBreak,
	"case":         KwCase,
	"const":        KwConst,
	"const_assert": KwConstAssert,
	"continue":     KwContinue,
	"continuing":   KwContinuing,
	"default":      KwDefault,
	"diagnostic":   KwDiagnostic,
	"discard":      KwDiscard,
	"else":         KwElse,
	"enable":       KwEnable,
	"false":        KwFalse,
	"fn":           KwFn,
	"for":          KwFor,
	"if":           KwIf,
	"let":          KwLet,
	"loop":         KwLoop,
	"override":     KwOverride,
	"requires":     KwRequires,
	"return":       KwReturn,
	"struct":       KwStruct,
	"switch":       KwSwitch,
	"true":         KwTrue,
	"var":          KwVar,
	"while":        KwWhile,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var templatedTypes = map[string]struct{}{
	"array": {}, "atomic": {}, "bitcast": {}, "ptr": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"texture_1d": {}, "texture_2d": {}, "texture_2d_array": {}, "texture_3d": {},
	"texture_cube": {}, "texture_cube_array": {}, "texture_multisampled_2d": {},
	"texture_storage_1d": {}, "texture_storage_2d": {}, "texture_storage_2d_array": {},
	"texture_storage_3d": {},
}

// TemplatedTypeName reports whether a predeclared identifier takes a template list,
// so that `vec3<f32>(...)` is not read as a comparison in expression position.
func TemplatedTypeName(ident string) bool {
	_, ok := templatedTypes[ident]
	return ok
}
