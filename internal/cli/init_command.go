package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/mapdoc/internal/config"
	"github.com/temirov/mapdoc/internal/utils"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = "Write the default mapdoc configuration to ./" + utils.ConfigFileName +
		", or to ~/" + utils.GlobalConfigDirectoryName + "/" + utils.GlobalConfigFileName + " with --global."
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the global configuration in the home directory"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initSuccessMessageFormat  = "Configuration written to %s\n"
)

func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, err := fmt.Fprintf(dependencies.Stdout, initSuccessMessageFormat, destinationPath)
			return err
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
