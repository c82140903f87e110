package asset

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/disintegration/imaging"
)

//go:embed *.png
var content embed.FS

type Name string

const (
	Wurstpick Name = "wurstpick.png"
)

func Read(name Name) []byte {
	data, errRead := content.ReadFile(string(name))
	if errRead != nil {
		panic(fmt.Sprintf("Cannot load embed asset: %v", errRead))
	}

	return data
}

// Icon returns the menu bar icon, doubled in size for zoom levels of 2 and up.
func Icon(zoom uint8) []byte {
	icon := Read(Wurstpick)
	if zoom < 2 {
		return icon
	}

	img, errDecode := imaging.Decode(bytes.NewReader(icon))
	if errDecode != nil {
		panic(fmt.Sprintf("Cannot decode embed asset: %v", errDecode))
	}

	bounds := img.Bounds()
	scaled := imaging.Resize(img, bounds.Dx()*2, bounds.Dy()*2, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if errEncode := imaging.Encode(&buf, scaled, imaging.PNG); errEncode != nil {
		panic(fmt.Sprintf("Cannot encode icon: %v", errEncode))
	}

	return buf.Bytes()
}
