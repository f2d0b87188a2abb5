package cli

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd(model, short string, bind func(*modelFlags, *cobra.Command)) *cobra.Command {
	var (
		flags modelFlags
		out   outputFlags
	)
	cmd := &cobra.Command{
		Use:   model,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd.OutOrStdout(), model, &flags, &out)
		},
	}
	bind(&flags, cmd)
	out.bind(cmd.Flags())
	return cmd
}

// gbmCmd represents the gbm command
var gbmCmd = newGenerateCmd(modelGBM, "generate a geometric Brownian motion path", func(f *modelFlags, cmd *cobra.Command) {
	f.bindPrice(cmd.Flags())
	f.bindProcess(cmd.Flags(), 0.2)
})

var jumpCmd = newGenerateCmd(modelJump, "generate a jump-diffusion path", func(f *modelFlags, cmd *cobra.Command) {
	f.bindPrice(cmd.Flags())
	f.bindProcess(cmd.Flags(), 0.2)
	f.bindJump(cmd.Flags())
})

var vasicekCmd = newGenerateCmd(modelVasicek, "generate a mean-reverting short rate path", func(f *modelFlags, cmd *cobra.Command) {
	f.bindRate(cmd.Flags())
	f.bindProcess(cmd.Flags(), 0.03)
})

func init() {
	RootCmd.AddCommand(gbmCmd)
	RootCmd.AddCommand(jumpCmd)
	RootCmd.AddCommand(vasicekCmd)
}
