// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ScanRootNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ScanFailedId
	InvalidAddonsId
	InvalidGameVariantId
	WatchFailedId
	AddonNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation about this issue type
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
		extraMd += "## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	scanRootNotFoundIssue = &Issue{
		id: ScanRootNotFoundId,
		mdMsg: `
# AddOns folder not found!

The folder that should hold your add-ons does not exist, so there was nothing to scan.

## Where we looked
The game keeps add-ons in your Documents folder:
~~~
Documents/Elder Scrolls Online/live/AddOns
Documents/Elder Scrolls Online/pts/AddOns
~~~

## Things you can try:
- Start the game once so it creates the folder
- Scan the PTS client instead:
~~~
$ addonscan list --variant pts
~~~
- Point at the folder directly:
~~~
$ addonscan list --dir "/path/to/AddOns"
~~~
- Or set it permanently with ` + "`addons_dir`" + ` in your config file`,
		extLinks: []HttpLink{"https://help.elderscrollsonline.com/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your configuration file could not be read or does not match the expected schema.

## Things you can try:
- Show where the config file lives:
~~~
$ addonscan config path
~~~
- Check the CUE syntax of the file
- Valid values for ` + "`game_variant`" + ` are "live" and "pts"
- Regenerate a default file after moving the broken one away:
~~~
$ addonscan config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	scanFailedIssue = &Issue{
		id: ScanFailedId,
		mdMsg: `
# Failed to scan add-ons!

The AddOns folder exists but could not be read.

## Things you can try:
- Check that your user can read the folder and its subfolders
- Make sure the path points at a folder, not a file
- Re-run with ` + "`--verbose`" + ` to see every skipped path`,
	}

	invalidAddonsIssue = &Issue{
		id: InvalidAddonsId,
		mdMsg: `
# Some add-ons will not be loaded!

The game only loads an add-on when its manifest file is named after the folder
holding it, e.g. ` + "`MyAddon/MyAddon.txt`" + `.

## Things you can try:
- List the affected add-ons:
~~~
$ addonscan list --view errors
~~~
- Rename the folder or the manifest so the names match
- Reinstall add-ons that were extracted into an extra folder level`,
	}

	invalidGameVariantIssue = &Issue{
		id: InvalidGameVariantId,
		mdMsg: `
# Invalid game variant!

The game variant selects which client's AddOns folder is scanned.

## Valid variants:
- ` + "`live`" + `: the regular game client
- ` + "`pts`" + `: the public test server`,
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# Failed to watch the AddOns folder!

Changes to add-ons could not be tracked.

## Things you can try:
- On Linux, raise the inotify watch limit:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~
- Run ` + "`addonscan list`" + ` without ` + "`--watch`" + ` and rescan manually`,
	}

	addonNotFoundIssue = &Issue{
		id: AddonNotFoundId,
		mdMsg: `
# Add-on not found!

No add-on folder matched the name you gave.

## Things you can try:
- List every add-on with its folder:
~~~
$ addonscan list --view all
~~~
- Use the path relative to the AddOns folder for bundled add-ons, e.g.
  ` + "`LibAddonMenu-2.0/LibStub`",
	}

	// catalog keeps issues in Id order so Values is deterministic.
	catalog = []*Issue{
		scanRootNotFoundIssue,
		configLoadFailedIssue,
		scanFailedIssue,
		invalidAddonsIssue,
		invalidGameVariantIssue,
		watchFailedIssue,
		addonNotFoundIssue,
	}
)

func Values() []*Issue {
	return slices.Clone(catalog)
}

func Get(id Id) *Issue {
	idx := slices.IndexFunc(catalog, func(i *Issue) bool { return i.id == id })
	if idx < 0 {
		return nil
	}
	return catalog[idx]
}
