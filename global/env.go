package global

import (
	"github.com/planhub/collab-event-service/pkg/fileurl"
)

var (
	// ROOT is the directory the binary runs from.
	ROOT string
	Name string = "Collab Event Service"
)

func init() {
	filename := fileurl.GetExePath()
	ROOT = filename + "/"
}
