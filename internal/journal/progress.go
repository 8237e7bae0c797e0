package journal

import "io"

type progressWriter struct {
	w        io.Writer
	total    int64
	written  int64
	progress ProgressFunc
}

func newProgressWriter(w io.Writer, total int64, progress ProgressFunc) *progressWriter {
	if total <= 0 {
		total = -1
	}
	return &progressWriter{w: w, total: total, progress: progress}
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.written += int64(n)
	if pw.progress != nil {
		pw.progress(pw.written, pw.total)
	}
	return n, err
}
