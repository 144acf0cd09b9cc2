// Package cli defines the Cobra command tree for the bush CLI. The root
// command scaffolds the repository described by bush.yaml; each other file
// registers one subcommand (doctor, tree, add, init, config, version). Command
// implementations delegate to internal packages and only handle flags,
// settings resolution and output formatting.
package cli
