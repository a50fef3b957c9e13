package render

import "fmt"

// ShaderError reports a shader that failed to compile.
type ShaderError struct {
	Name string
	Err  error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("compiling shader %s: %v", e.Name, e.Err)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}
