package version

// Version is the cp-r version, overridden at build time with -ldflags.
var Version = "dev"
