// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

const (
	FileNotFoundId Id = iota + 1
	PermissionDeniedId
	KeypathInvalidId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // rendered under "See also"
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as terminal Markdown using the given glamour
// style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.MarkdownMsg())+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# Input file not found!

One of the files given to inigrep does not exist.

## Things you can try:
- Check the path for typos
- Skip files that may be absent:
~~~
$ inigrep --ignore-missing values core.editor ~/.apprc /etc/apprc
~~~
- Read from standard input with ` + "`-`" + `:
~~~
$ cat app.ini | inigrep values db.host -
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

inigrep could not open one of the input files for reading.

## Things you can try:
- Check the file permissions with ` + "`ls -l`" + `
- Run inigrep as a user that can read the file`,
	}

	keypathInvalidIssue = &Issue{
		id: KeypathInvalidId,
		mdMsg: `
# Invalid keypath!

Keypaths have the form ` + "`section.key`" + ` and are split on the **last** period,
so section names may contain periods but keys may not.

## Rules:
- ` + "`values`" + ` and ` + "`raw-values`" + ` need both a section and a key
- ` + "`paths`" + ` and ` + "`clone`" + ` also accept ` + "`section.`" + ` (one section) and ` + "`.`" + ` (everything)
- A key without a section (` + "`.key`" + `) is never valid
- Section names must not contain ` + "`]`" + `
- Keys must not contain ` + "`\\`" + `, ` + "`[`" + ` or ` + "`=`" + `

## Examples:
~~~
$ inigrep values db.host app.ini
$ inigrep paths --keypath db. app.ini
$ inigrep clone --keypath . app.ini
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your inigrep configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of your config file
- Show where inigrep looks for it:
~~~
$ inigrep config path
~~~
- Write a fresh default file:
~~~
$ inigrep config init
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():     fileNotFoundIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		keypathInvalidIssue.Id():   keypathInvalidIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

// Ids returns the catalog IDs in ascending order.
func Ids() []Id {
	return slices.Sorted(maps.Keys(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
