// Package transform is the pure middle of the pipeline: it turns a
// gathered World into the set of planned writes, with no I/O and total
// error aggregation across items.
package transform

import (
	"path/filepath"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/marker"
	"github.com/arthur-debert/dots/pkg/template"
	"github.com/arthur-debert/dots/pkg/types"
	"github.com/arthur-debert/dots/pkg/world"
)

// Process computes one planned write per fetched link and per gathered
// file. A failure on one item never blocks the others; if any item
// failed, the full error list comes back and no writes do.
//
// Destination collisions are not detected here. The write set is
// unordered and the applier's replace semantics make a collision
// last-write-wins.
func Process(w *world.World) ([]types.PlannedWrite, []error) {
	logger := logging.GetLogger("transform")

	var errs errors.List
	writes := make([]types.PlannedWrite, 0, len(w.Links)+len(w.Files))

	for _, link := range w.Links {
		writes = append(writes, processLink(w.Root, link))
	}

	for _, file := range w.Files {
		write, err := processFile(w.Root, file)
		if err != nil {
			errs.Append(err)
			continue
		}
		writes = append(writes, write)
	}

	if errs.Len() > 0 {
		return nil, errs.Errors()
	}

	logger.Debug().Int("writes", len(writes)).Msg("transformation complete")
	return writes, nil
}

// processLink plans the write for one fetched link: the generated-file
// header (marker line, when configured, plus banner) ahead of the body.
func processLink(root string, link world.FetchedLink) types.PlannedWrite {
	dest := filepath.Join(root, link.Path)
	return types.PlannedWrite{
		Path:     dest,
		Contents: marker.InjectHeader(link.Marker, link.URL, dest) + link.Contents,
	}
}

// processFile plans the write for one gathered file. A marker directive
// overrides the destination and is stripped from the content; otherwise
// the file lands at its relative position under the owning output tree.
func processFile(root string, file world.SourceFile) (types.PlannedWrite, error) {
	directive, contents := marker.Extract(file.Contents)

	var dest string
	if directive != nil {
		dest = directive.Path.String()
	} else {
		rel, err := filepath.Rel(filepath.Join(root, file.Input), file.Path)
		if err != nil {
			return types.PlannedWrite{}, errors.Wrapf(err, errors.ErrPathOutsideInput,
				"file is not under its input directory").
				WithDetail("path", file.Path).
				WithDetail("input", file.Input)
		}
		dest = file.Output.Join(rel).String()
	}

	// No variables are bound today; plain text renders to itself.
	rendered, err := template.Render(contents, nil)
	if err != nil {
		return types.PlannedWrite{}, errors.Wrapf(err, errors.ErrTemplateRender,
			"failed to render %s", file.Path).
			WithDetail("path", file.Path)
	}

	return types.PlannedWrite{Path: dest, Contents: rendered}, nil
}
