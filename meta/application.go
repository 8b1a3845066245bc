package meta

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// Well-known Application IDs, registered with the FLAC maintainers.
// Arbitrary unregistered IDs are allowed too; just set Application.Tag
// directly.
//
// ref: https://www.xiph.org/flac/id.html
const (
	TagFlacFile                         uint32 = 0x41544348 // "ATCH"
	TagBeSolo                           uint32 = 0x42534F4C // "BSOL"
	TagBugsPlayer                       uint32 = 0x42554753 // "BUGS"
	TagGoldWaveCuePoints                uint32 = 0x43756573 // "Cues"
	TagCueSplitter                      uint32 = 0x46696361 // "Fica"
	TagFlacTools                        uint32 = 0x46746F6C // "Ftol"
	TagMotbMetaCzar                     uint32 = 0x4D4F5442 // "MOTB"
	TagMP3StreamEditor                  uint32 = 0x4D505345 // "MPSE"
	TagMusicML                          uint32 = 0x4D754D4C // "MuML"
	TagSoundDevicesRIFFChunkStorage     uint32 = 0x52494646 // "RIFF"
	TagSoundFontFLAC                    uint32 = 0x5346464C // "SFFL"
	TagSonyCreativeSoftware             uint32 = 0x534F4E59 // "SONY"
	TagFlacSqueeze                      uint32 = 0x5351455A // "SQEZ"
	TagTwistedWave                      uint32 = 0x54745776 // "TtWv"
	TagUITSEmbeddingTools               uint32 = 0x55495453 // "UITS"
	TagFlacAIFFChunkStorage             uint32 = 0x61696666 // "aiff"
	TagFlacImage                        uint32 = 0x696D6167 // "imag"
	TagParseableEmbeddedExtensibleMeta  uint32 = 0x7065656D // "peem"
	TagQFlacStudio                      uint32 = 0x71667374 // "qfst"
	TagFlacRIFFChunkStorage             uint32 = 0x72696666 // "riff"
	TagTagTuner                         uint32 = 0x74756E65 // "tune"
	TagFlacWave64ChunkStorage           uint32 = 0x77363420 // "w64 "
	TagXBAT                             uint32 = 0x78626174 // "xbat"
	TagXMCD                             uint32 = 0x786D6364 // "xmcd"
)

// Application carries third-party application-specific data. The only
// mandatory field is the 32-bit tag, granted to an application on request
// by the FLAC maintainers; the remainder of the block is owned by that
// application.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_application
type Application struct {
	Tag  uint32
	Data []byte
}

// Write serializes the block header, the 32-bit tag, and the opaque
// payload to dst.
func (app Application) Write(dst io.Writer, isLast bool) error {
	return writeBlock(dst, func(bw *bitio.Writer) error {
		length := uint32(4 + len(app.Data))
		if err := writeHeader(bw, isLast, TypeApplication, length); err != nil {
			return err
		}
		if err := bw.WriteBits(uint64(app.Tag), 32); err != nil {
			return errutil.Err(err)
		}
		if _, err := bw.Write(app.Data); err != nil {
			return errutil.Err(err)
		}
		return nil
	})
}
