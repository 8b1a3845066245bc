package flacenc

import (
	"io"

	"github.com/mewkiz/pkg/errutil"
)

// Close flushes any buffered frame bytes. If the underlying writer also
// implements io.WriteSeeker, Close seeks back to the StreamInfo block and
// rewrites it with the final MD5 checksum, sample count, and block-size
// and frame-size extrema collected while encoding — mirroring the
// teacher's own seek-back update in its Encoder.Close.
func (enc *Encoder) Close() error {
	if enc.bw != nil {
		if err := enc.bw.Flush(); err != nil {
			return errutil.Err(err)
		}
	}

	ws, ok := enc.w.(io.WriteSeeker)
	if !ok {
		return nil
	}
	sum := enc.md5sum.Sum(nil)
	copy(enc.info.MD5[:], sum)

	if _, err := ws.Seek(int64(len(Signature)), io.SeekStart); err != nil {
		return errutil.Err(err)
	}
	if err := enc.info.Write(ws, enc.isLastBlockFirst); err != nil {
		return errutil.Err(err)
	}
	return nil
}
