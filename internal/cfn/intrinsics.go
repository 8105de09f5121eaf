package cfn

// Pseudo parameters.
const (
	PseudoRegion    = "AWS::Region"
	PseudoStackName = "AWS::StackName"
)

// Ref refers to a resource or parameter.
func Ref(id string) map[string]any {
	return map[string]any{"Ref": id}
}

// GetAtt reads an attribute of a resource.
func GetAtt(id, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{id, attribute}}
}

// Sub substitutes ${} variables in s.
func Sub(s string) map[string]any {
	return map[string]any{"Fn::Sub": s}
}

// Select picks element index of list.
func Select(index int, list any) map[string]any {
	return map[string]any{"Fn::Select": []any{index, list}}
}

// GetAZs lists the availability zones of the stack's region.
func GetAZs() map[string]any {
	return map[string]any{"Fn::GetAZs": Ref(PseudoRegion)}
}

// FindInMap reads a value from the Mappings section.
func FindInMap(mapping string, top, second any) map[string]any {
	return map[string]any{"Fn::FindInMap": []any{mapping, top, second}}
}

// Base64 encodes v, usually user data.
func Base64(v any) map[string]any {
	return map[string]any{"Fn::Base64": v}
}
