package signals

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
)

type EXIFMeta struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Software    string `json:"software,omitempty"`
	ModifyDate  string `json:"modify_date,omitempty"`
	CreateDate  string `json:"create_date,omitempty"`
	Orientation int    `json:"orientation,omitempty"`
	LensModel   string `json:"lens_model,omitempty"`
}

type EXIFInfo struct {
	HasEXIF bool      `json:"has_exif"`
	Meta    *EXIFMeta `json:"meta,omitempty"`
}

// ExtractEXIF never fails: any undecodable input just means no metadata.
// A Software tag naming an editor is the strongest local hint that an image
// was touched after capture.
func ExtractEXIF(data []byte) EXIFInfo {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return EXIFInfo{HasEXIF: false}
	}

	meta := &EXIFMeta{
		Make:       exifString(x, exif.Make),
		Model:      exifString(x, exif.Model),
		Software:   exifString(x, exif.Software),
		ModifyDate: exifString(x, exif.DateTime),
		CreateDate: exifString(x, exif.DateTimeOriginal),
		LensModel:  exifString(x, exif.LensModel),
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if v, err := tag.Int(0); err == nil {
			meta.Orientation = v
		}
	}
	return EXIFInfo{HasEXIF: true, Meta: meta}
}

func exifString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return val
}
