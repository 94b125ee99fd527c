package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library serves the function calls of a model.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a tool a model can call.
type Function interface {
	// Declaration of the function for the model.
	Declaration() *genai.FunctionDeclaration
	// Call the function with the model's arguments.
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches calls to functions by name.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return failure(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
	}
}

// NewDeclaration returns the declarations of functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	output, err := f.Func(ctx, args)
	if err != nil {
		return failure(id, f.Decl.Name, err)
	}
	return success(id, f.Decl.Name, output)
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

// stringArg returns the string argument name.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// intArg returns the integer argument name, or def when absent. JSON numbers are float64.
func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	}
	return def, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
}
