package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	switchFlagTypeName       = "bool"
	switchFlagTrueLiteral    = "true"
	switchFlagAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	errorSwitchValueFormat   = "invalid boolean value %q for --%s; accepted values: %s"

	// listFlagTypeName is the pflag type of StringSlice flags.
	listFlagTypeName   = "stringSlice"
	listValueSeparator = ","
)

// switchLiterals maps the words accepted after a switch flag to their value.
var switchLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// switchValue is a pflag.Value for flags such as --tokens that may be given
// bare, as --flag=value, or as --flag value with a yes/no style literal.
type switchValue struct {
	target   *bool
	flagName string
}

func (value *switchValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = switchFlagTrueLiteral
	}
	parsed, known := switchLiterals[normalized]
	if !known {
		return fmt.Errorf(errorSwitchValueFormat, input, value.flagName, switchFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *switchValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *switchValue) Type() string {
	return switchFlagTypeName
}

// registerSwitchFlag adds a switch flag named name to flagSet.
func registerSwitchFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&switchValue{target: target, flagName: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(false)
		registered.NoOptDefVal = switchFlagTrueLiteral
	}
}

// joinFlagArguments rewrites "--flag literal" pairs into "--flag=literal" for
// every switch flag of command so the literal is not taken as the project path.
// A list flag such as --ignore-dirs consumes every following non-flag token,
// which are joined into one comma separated value.
func joinFlagArguments(command *cobra.Command, arguments []string) []string {
	switchNames := map[string]struct{}{}
	listNames := map[string]struct{}{}
	collectFlagNames(command, switchNames, listNames)
	if len(switchNames) == 0 && len(listNames) == 0 {
		return arguments
	}

	joined := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			joined = append(joined, arguments[index:]...)
			break
		}
		flagName, isLongFlag := strings.CutPrefix(argument, "--")
		if !isLongFlag || strings.Contains(flagName, "=") || index+1 >= len(arguments) {
			joined = append(joined, argument)
			continue
		}
		if _, isSwitch := switchNames[flagName]; isSwitch {
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			if _, known := switchLiterals[literal]; known {
				joined = append(joined, argument+"="+arguments[index+1])
				index++
				continue
			}
		}
		if _, isList := listNames[flagName]; isList {
			values := collectListValues(arguments[index+1:])
			if len(values) > 0 {
				joined = append(joined, argument+"="+strings.Join(values, listValueSeparator))
				index += len(values)
				continue
			}
		}
		joined = append(joined, argument)
	}
	return joined
}

// collectListValues returns the leading tokens of arguments up to the next flag.
func collectListValues(arguments []string) []string {
	var values []string
	for _, argument := range arguments {
		if strings.HasPrefix(argument, "-") {
			break
		}
		values = append(values, argument)
	}
	return values
}

func collectFlagNames(command *cobra.Command, switchNames map[string]struct{}, listNames map[string]struct{}) {
	if command == nil {
		return
	}
	record := func(flag *pflag.Flag) {
		if _, isSwitch := flag.Value.(*switchValue); isSwitch {
			switchNames[flag.Name] = struct{}{}
			return
		}
		if flag.Value.Type() == listFlagTypeName {
			listNames[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(record)
	command.Flags().VisitAll(record)
	for _, child := range command.Commands() {
		collectFlagNames(child, switchNames, listNames)
	}
}
