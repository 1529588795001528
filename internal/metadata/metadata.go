// Package metadata reads capture details from photo files.
package metadata

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	serr "photocull/internal/errors"
	log "photocull/internal/log"
)

// Source says where a capture time came from.
type Source int

const (
	// FromModTime means the file had no usable EXIF date.
	FromModTime Source = iota
	// FromEXIF means DateTimeOriginal was read from the file.
	FromEXIF
)

func (s Source) String() string {
	if s == FromEXIF {
		return "exif"
	}
	return "modtime"
}

// exifLayout is the EXIF 2.x date format.
const exifLayout = "2006:01:02 15:04:05"

// Info is what the preview panel shows besides pixels.
type Info struct {
	Taken  time.Time
	Source Source
	Camera string
	Size   int64
}

var registerOnce sync.Once

// Read extracts capture time and camera model from path. Files without
// EXIF, or with unreadable EXIF, fall back to their modification time.
func Read(path string) (Info, error) {
	registerOnce.Do(func() { exif.RegisterParsers(mknote.All...) })
	logger := log.LogWithFields(log.F("path", path))

	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, serr.FromOS("failed to stat photo", path, err)
	}
	info := Info{Taken: stat.ModTime(), Source: FromModTime, Size: stat.Size()}

	file, err := os.Open(path)
	if err != nil {
		return info, serr.FromOS("failed to open photo for exif", path, err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		logger.Debugf("No EXIF data found or failed to decode: %v", err)
		return info, nil
	}

	if dt, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := dt.StringVal(); err == nil {
			s = strings.TrimRight(strings.TrimSpace(s), "\x00")
			if t, err := time.ParseInLocation(exifLayout, s, time.Local); err == nil {
				info.Taken = t
				info.Source = FromEXIF
			} else {
				logger.Debugf("Unparseable DateTimeOriginal %q", s)
			}
		}
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			info.Camera = strings.TrimSpace(s)
		}
	}
	return info, nil
}

// TakenAt returns the capture time of path and where it came from.
func TakenAt(path string) (time.Time, Source, error) {
	info, err := Read(path)
	if err != nil {
		return time.Time{}, FromModTime, err
	}
	return info.Taken, info.Source, nil
}
