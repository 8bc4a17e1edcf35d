// Package commands defines the jumptap CLI.
//
// Commands
//
//   - run       Open the jumper row (default)
//   - simulate  Play a gesture script headlessly and print the frame trace
//   - stats     Print click totals and recent landings
//   - config    Show or write the config file
//
// The root command loads configuration and opens the log file before any
// subcommand runs. Subcommands that need the click store open it themselves.
package commands
