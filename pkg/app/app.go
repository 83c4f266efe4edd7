/*
Package app 基于 cobra 构建命令行应用。

NewApp 根据选项生成根命令：
  - 把 CliOptions 的分组参数挂到命令上，帮助信息按分组打印；
  - 自动添加 --config、--version 全局参数；
  - 运行时依次执行 loadConfig、prepareOptions、printBanner，最后调用 RunFunc。
*/
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	cliflag "github.com/maxiaolu1981/cretem/nexuscore/component-base/cli/flag"
	"github.com/maxiaolu1981/cretem/nexuscore/component-base/version"
	"github.com/maxiaolu1981/cretem/nexuscore/component-base/version/verflag"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const globalFlagSetName = "global"

var progressMessage = color.GreenString("==>")

// App is the main structure of a cli application.
type App struct {
	basename    string
	name        string
	description string
	options     CliOptions
	runFunc     RunFunc
	args        cobra.PositionalArgs

	// 关闭的功能
	silence   bool
	noVersion bool
	noConfig  bool

	cmd *cobra.Command
}

// Option defines optional parameters for initializing the application structure.
type Option func(*App)

// RunFunc 参数解析、校验完成后的启动回调。
type RunFunc func(basename string) error

// WithOptions 命令行参数与配置文件反序列化到 opt。
func WithOptions(opt CliOptions) Option {
	return func(a *App) { a.options = opt }
}

func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithSilence 启动时不打印版本、配置等信息。
func WithSilence() Option {
	return func(a *App) { a.silence = true }
}

func WithNoVersion() Option {
	return func(a *App) { a.noVersion = true }
}

func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// WithDefaultValidArgs 拒绝任何非空的位置参数。
func WithDefaultValidArgs() Option {
	return func(a *App) { a.args = noPositionalArgs }
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if arg != "" {
			return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
		}
	}
	return nil
}

// NewApp 创建应用，name 用于帮助信息，basename 为可执行文件名。
func NewApp(name string, basename string, opts ...Option) *App {
	a := &App{name: name, basename: basename}
	for _, o := range opts {
		o(a)
	}

	a.cmd = a.newCommand()

	return a
}

func (a *App) newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           FormatBaseName(a.basename),
		Short:         a.name,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cliflag.InitFlags(cmd.Flags())

	if a.runFunc != nil {
		cmd.RunE = a.runCommand
	}

	var fss cliflag.NamedFlagSets
	if a.options != nil {
		fss = a.options.Flags()
	}
	a.addGlobalFlags(fss.FlagSet(globalFlagSetName), cmd.Name())

	for _, name := range fss.Order {
		cmd.Flags().AddFlagSet(fss.FlagSets[name])
	}
	setHelpFuncs(cmd, fss)

	return cmd
}

// addGlobalFlags 注册 --version、--config 与 --help。
func (a *App) addGlobalFlags(fs *pflag.FlagSet, cmdName string) {
	if !a.noVersion {
		verflag.AddFlags(fs)
	}
	if !a.noConfig {
		addConfigFlag(a.basename, fs)
	}
	fs.BoolP("help", "h", false, fmt.Sprintf("help for %s", cmdName))
}

// Run 执行根命令，出错时打印错误并以 1 退出。
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// Command returns cobra command instance inside the application.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

func (a *App) runCommand(cmd *cobra.Command, _ []string) error {
	cliflag.PrintFlags(cmd.Flags())
	if !a.noVersion {
		verflag.PrintAndExitIfRequested()
	}

	for _, step := range []func(*cobra.Command) error{a.loadConfig, a.prepareOptions, a.printBanner} {
		if err := step(cmd); err != nil {
			return err
		}
	}

	return a.runFunc(a.basename)
}

// loadConfig 合并配置文件、环境变量与命令行参数，写回 options。
func (a *App) loadConfig(cmd *cobra.Command) error {
	if a.noConfig || a.options == nil {
		return nil
	}
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	return viper.Unmarshal(a.options)
}

// prepareOptions 补全默认值后校验，全部校验错误合并返回。
func (a *App) prepareOptions(_ *cobra.Command) error {
	if a.options == nil {
		return nil
	}
	if c, ok := a.options.(CompleteableOptions); ok {
		if err := c.Complete(); err != nil {
			return err
		}
	}

	return errors.Join(a.options.Validate()...)
}

func (a *App) printBanner(_ *cobra.Command) error {
	if a.silence {
		return nil
	}

	wd, _ := os.Getwd()
	log.Infof("%v Starting %s in %s", progressMessage, a.name, wd)
	if !a.noVersion {
		log.Infof("%v Version: `%s`", progressMessage, version.Get().ToJSON())
	}
	if !a.noConfig {
		log.Infof("%v Config file used: `%s`", progressMessage, viper.ConfigFileUsed())
	}
	if p, ok := a.options.(PrintableOptions); ok {
		log.Infof("%v Config: `%s`", progressMessage, p.String())
	}

	return nil
}

// setHelpFuncs 帮助信息按参数分组打印，宽度跟随终端。
func setHelpFuncs(cmd *cobra.Command, fss cliflag.NamedFlagSets) {
	const usageFmt = "Usage:\n  %s\n"
	cols := terminalWidth()

	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprintf(cmd.OutOrStderr(), usageFmt, cmd.UseLine())
		cliflag.PrintSections(cmd.OutOrStderr(), fss, cols)
		return nil
	})
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n"+usageFmt, cmd.Long, cmd.UseLine())
		cliflag.PrintSections(cmd.OutOrStdout(), fss, cols)
	})
}

// terminalWidth 返回标准输出的终端宽度，非终端时返回 0。
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
