// Command flacencdemo encodes a mono WAV file to FLAC using the flacenc
// encoder. It is a thin driver, not a general-purpose transcoder: stereo
// and multi-channel input is rejected, matching the encoder's mono-only
// scope.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mewkiz/flacenc"
)

// blockSize is the number of samples encoded per FLAC frame.
const blockSize = 4096

func main() {
	var (
		force   bool
		logPath string
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.StringVar(&logPath, "log", "", "path to a rotating log file (stderr if empty)")
	flag.Parse()

	log := newLogger(logPath)
	defer log.Sync()

	for _, wavPath := range flag.Args() {
		if err := wav2flac(wavPath, force, log); err != nil {
			log.Fatal("encode failed", zap.String("path", wavPath), zap.Error(err))
		}
	}
}

func newLogger(logPath string) *zap.Logger {
	if logPath == "" {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("zap.NewDevelopment: %v", err)
		}
		return l
	}
	cfg := zap.NewProductionEncoderConfig()
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), writer, zap.InfoLevel)
	return zap.New(core)
}

func wav2flac(wavPath string, force bool, log *zap.Logger) error {
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	sampleRate, nchannels, bps := dec.SampleRate, int(dec.NumChans), int(dec.BitDepth)
	if nchannels != 1 {
		return errors.Errorf("WAV file %q has %d channels; this encoder supports mono only", wavPath, nchannels)
	}

	flacPath := pathutil.TrimExt(wavPath) + ".flac"
	if !force && osutil.Exists(flacPath) {
		return errors.Errorf("FLAC file %q already present; use -f flag to force overwrite", flacPath)
	}
	w, err := os.Create(flacPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	scratch := make([]byte, 16+blockSize*4+8)
	enc, err := flacenc.NewEncoder(w, uint32(sampleRate), uint8(bps), scratch, log)
	if err != nil {
		return errors.WithStack(err)
	}
	defer enc.Close()

	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  int(sampleRate),
		},
		Data:           make([]int, blockSize),
		SourceBitDepth: bps,
	}
	samples := make([]int32, 0, blockSize)
	for !dec.EOF() {
		n, err := dec.PCMBuffer(buf)
		if err != nil && err != io.EOF {
			return errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		samples = samples[:0]
		for _, s := range buf.Data[:n] {
			samples = append(samples, int32(s))
		}
		if err := enc.WriteBlock(samples); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
