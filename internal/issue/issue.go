// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	RegistryNotFoundId
	DefinitionsExistId
	NothingToInstallId
	DefinitionParseErrorId
	VaultUnreachableId
	ShellNotFoundId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the enviz configuration file.

## Configuration file locations:
- Linux: ~/.config/enviz/config.cue
- macOS: ~/Library/Application Support/enviz/config.cue
- Windows: %APPDATA%\enviz\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ enviz config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/enviz/config.cue
~~~

## Example configuration:
~~~cue
vault: {
  server: "https://vault.enviz.dev"
}

registries: {
  root: "/srv/projects"
  defaults: [
    "/srv/enviz/registry/primary/default",
  ]
}

ui: {
  verbose: false
}
~~~`,
	}

	registryNotFoundIssue = &Issue{
		id: RegistryNotFoundId,
		mdMsg: `
# Registry not found!

The registry you targeted does not exist or is not a directory.

## Things you can try:
- List the registries enviz currently sees:
~~~
$ enviz registries
~~~

- Create the registry directory before installing into it:
~~~
$ mkdir -p /path/to/registry
~~~

- Check the path passed via --registry for typos
- Add the registry to registries.defaults in your config so it is
  created and consulted consistently`,
	}

	definitionsExistIssue = &Issue{
		id: DefinitionsExistId,
		mdMsg: `
# Definitions already exist!

The registry already holds different revisions of some definitions in
your batch, so nothing was installed. Installs are all-or-nothing: one
conflict stops the entire batch before any file is written.

## Things you can try:
- Replace the existing revisions:
~~~
$ enviz install --overwrite <files...>
~~~

- Inspect what the registry currently holds:
~~~
$ enviz registries
~~~

- Bump the version in your definition files so old and new revisions
  can coexist side by side`,
	}

	nothingToInstallIssue = &Issue{
		id: NothingToInstallId,
		mdMsg: `
# Nothing to install!

Every definition in your batch is already present, byte-for-byte
identical to what the registry holds. This is not a failure; there was
simply no work to do.

## Things you can try:
- Verify you passed the files you meant to pass
- If you expected changes, check you edited the right revision
  (identifier and version select the target file)`,
	}

	definitionParseErrorIssue = &Issue{
		id: DefinitionParseErrorId,
		mdMsg: `
# Failed to parse definition!

A definition file could not be decoded. Definitions are JSON objects
with an "identifier" field and an optional "version" field; everything
else is preserved verbatim.

## Things you can try:
- Check the file is a single JSON object (not an array or fragment)
- Check the "identifier" field is present and a string

## Example definition:
~~~json
{
  "identifier": "zlib",
  "version": "1.3",
  "source": "https://example.com/zlib-1.3.tar.gz"
}
~~~`,
	}

	vaultUnreachableIssue = &Issue{
		id: VaultUnreachableId,
		mdMsg: `
# Vault server unreachable!

Could not talk to the vault server, so its registries could not be
retrieved or updated.

## Things you can try:
- Check which server is configured:
~~~
$ enviz info
~~~

- Check your network connection and any proxy settings
- Point enviz at a different vault:
~~~cue
vault: server: "https://vault.example.com"
~~~

- Or override it for one invocation:
~~~
$ ENVIZ_VAULT_SERVER="https://vault.example.com" enviz install --vault main <files...>
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a suitable shell to spawn.

## Shells we look for:
- Linux/macOS: the configured shell.default, bash
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Configure a shell that exists on this machine:
~~~cue
shell: default: "zsh"
~~~

- Or name one explicitly:
~~~
$ enviz shell --shell /usr/bin/fish
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- Installing into a registry directory you don't own
- A registry path that points into protected territory

## Things you can try:
- Check the ownership and mode of the registry directory
- Install into a user-writable registry instead (discovered
  registries under your project tree are a good fit)
- Ask an administrator to install into shared registries`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		registryNotFoundIssue.Id():     registryNotFoundIssue,
		definitionsExistIssue.Id():     definitionsExistIssue,
		nothingToInstallIssue.Id():     nothingToInstallIssue,
		definitionParseErrorIssue.Id(): definitionParseErrorIssue,
		vaultUnreachableIssue.Id():     vaultUnreachableIssue,
		shellNotFoundIssue.Id():        shellNotFoundIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
