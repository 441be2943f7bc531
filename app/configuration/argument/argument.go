// Package argument is used to read command line arguments of the application.
package argument

import (
	"fmt"
	"os"
	"strings"
)

// List of the application flags
const (
	Secure = "secure" // If passed, then the server wallet key is read from the vault instead of the environment
	Debug  = "debug"  // If passed, then the debug messages are printed
)

// GetEnvPaths any command line data that ends with .env is the environment file path.
// Arguments starting with '--' are flags, not paths.
func GetEnvPaths() []string {
	args := os.Args[1:]
	if len(args) == 0 {
		return []string{}
	}

	paths := make([]string, 0)

	for _, arg := range args {
		if len(arg) < 4 {
			continue
		}

		if arg[len(arg)-4:] != ".env" {
			continue
		}

		if strings.HasPrefix(arg, "--") {
			continue
		}
		paths = append(paths, arg)
	}

	return paths
}

// GetArguments Load arguments, not the environment variable paths.
// Arguments starts with '--'
func GetArguments() []string {
	args := os.Args[1:]
	if len(args) == 0 {
		return []string{}
	}

	parameters := make([]string, 0)

	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			parameters = append(parameters, arg[2:])
		}
	}

	return parameters
}

// Exist This function is same as `argument.Has`,
// except `argument.Exist()` loads arguments automatically.
func Exist(argument string) bool {
	return Has(GetArguments(), argument)
}

// ExtractValue Extracts the value of the argument if it has.
// The argument value comes after "=".
//
// If the argument doesn't exist, then returns an error.
// Therefore, you should check for the argument existence by calling `argument.Exist()`
func ExtractValue(arguments []string, required string) (string, error) {
	found := ""
	for _, argument := range arguments {
		// doesn't have a value
		if argument == required {
			continue
		}

		if strings.HasPrefix(argument, required+"=") {
			found = argument
			break
		}
	}

	value, err := getValue(found)
	if err != nil {
		return "", fmt.Errorf("getValue for %s argument: %w", required, err)
	}

	return value, nil
}

// Value Extracts the value of the argument from the command line.
func Value(name string) (string, error) {
	return ExtractValue(GetArguments(), name)
}

// getValue Extracts the value of the argument.
// Argument comes after '='
func getValue(argument string) (string, error) {
	parts := strings.SplitN(argument, "=", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("strings.split(`%s`) should has two parts", argument)
	}

	if len(parts[1]) == 0 {
		return "", fmt.Errorf("value of --%s is empty", parts[0])
	}
	return parts[1], nil
}

// Has checks is the required argument exists among arguments or not.
// The argument with the value (--name=value) matches the name.
func Has(arguments []string, required string) bool {
	for _, argument := range arguments {
		if argument == required {
			return true
		}

		if strings.HasPrefix(argument, required+"=") {
			return true
		}
	}

	return false
}
