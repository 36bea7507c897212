package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// assetFiles maps cues to the optional sample files that replace them.
var assetFiles = map[Cue]string{
	CueJump:     "jump.wav",
	CueStart:    "back.wav",
	CueGameOver: "over.wav",
	CueMusic:    "bg.wav",
}

// AssetFile returns the file name that overrides cue c.
func AssetFile(c Cue) string {
	return assetFiles[c]
}

// LoadAssets decodes every cue sample present in dir, resampled to rate.
// Missing files are skipped; an empty dir loads nothing.
func LoadAssets(dir string, rate beep.SampleRate) (map[Cue]*beep.Buffer, error) {
	assets := make(map[Cue]*beep.Buffer)
	if dir == "" {
		return assets, nil
	}

	for cue, name := range assetFiles {
		buf, err := loadWAV(filepath.Join(dir, name), rate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return assets, err
		}
		assets[cue] = buf
	}
	return assets, nil
}

func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot read %s: %w", path, err)
	}
	return buf, nil
}
