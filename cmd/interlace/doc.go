// Command interlace is the CLI front end for the interlacing pipeline. The
// root command runs a full interlace; subcommands cover configuration
// scaffolding and dependency status.
package main
