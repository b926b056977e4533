package factory

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/allape/openspin/config"
	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/loader/file"
	"github.com/allape/openspin/spin/loader/remote"
)

func isRemote(folderPath string) bool {
	return strings.HasPrefix(folderPath, "http://") || strings.HasPrefix(folderPath, "https://")
}

func LoaderFromConfig(vc config.Viewer) (spin.Loader, error) {
	switch vc.Loader {
	case config.LoaderAuto, "":
		if isRemote(vc.FolderPath) {
			return remote.New(http.DefaultClient), nil
		}
		return file.New(""), nil
	case config.LoaderFile:
		return file.New(""), nil
	case config.LoaderHTTP:
		return remote.New(http.DefaultClient), nil
	default:
		return nil, fmt.Errorf("unknown loader: %s", vc.Loader)
	}
}

func ViewerOptionsFromConfig(vc config.Viewer) (spin.Options, error) {
	background, err := config.ParseColor(vc.BackgroundColor)
	if err != nil {
		return spin.Options{}, err
	}

	return spin.Options{
		ID:              vc.ID,
		FolderPath:      vc.FolderPath,
		ViewWidth:       vc.ViewWidth,
		ViewHeight:      vc.ViewHeight,
		BackgroundColor: background,
		UCount:          vc.UCount,
		VCount:          vc.VCount,
		ImageExtension:  vc.ImageExtension,
		StartU:          vc.StartU,
		StartV:          vc.StartV,
		AllowFullscreen: vc.AllowFullscreen,
		RenderOnLoad:    vc.RenderOnLoad,
		Touch:           vc.TouchEnabled(),
		Placeholder:     vc.Placeholder,
	}, nil
}

// DocumentFromConfig creates every declared container.
func DocumentFromConfig(conf config.Config) *spin.Document {
	doc := spin.NewDocument()
	for _, id := range conf.Containers {
		doc.CreateContainer(id)
	}
	return doc
}

// ViewersFromConfig mounts every configured viewer.
// A viewer that can not be mounted is logged and skipped, the others still start.
func ViewersFromConfig(conf config.Config, doc *spin.Document) ([]*spin.Viewer, error) {
	viewers := make([]*spin.Viewer, 0, len(conf.Viewers))

	for _, vc := range conf.Viewers {
		loader, err := LoaderFromConfig(vc)
		if err != nil {
			return viewers, fmt.Errorf("viewer %s: %w", vc.ID, err)
		}

		options, err := ViewerOptionsFromConfig(vc)
		if err != nil {
			return viewers, fmt.Errorf("viewer %s: %w", vc.ID, err)
		}

		viewer, err := spin.New(doc, vc.Container, options, loader)
		if err != nil {
			l.Error().Println("viewer", vc.ID, "not mounted:", err)
			continue
		}
		l.Info().Printf("viewer %s mounted into %s, %d frames from %s", vc.ID, vc.Container, viewer.Grid().Len(), viewer.Options().FolderPath)

		viewers = append(viewers, viewer)
	}

	return viewers, nil
}
