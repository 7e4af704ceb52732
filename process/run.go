// Package process implements inspect, fix and edit commands over documents
// found in files, directories and zip archives.
package process

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"tabular/archive"
	"tabular/state"
)

var errNoSource = errors.New("no input source has been specified")

// docFunc handles single document. "src" is part of the source path (always
// including file name) relative to the original path. When actual file was
// specified it will be just base file name. When looking inside archive or
// directory it will be relative path inside archive or directory.
type docFunc func(ctx context.Context, r io.Reader, src string, log *zap.Logger) error

// walk determines whether src is a directory, an archive (possibly with path
// inside it) or a single document and calls fn for every document found.
// Failures of individual documents are logged and do not stop processing.
func walk(ctx context.Context, src string, fn docFunc, log *zap.Logger) error {
	fn = guarded(fn)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := walkDir(ctx, head, fn, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := walkArchive(ctx, head, tail, "", fn, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		doc, enc, err := isDocumentFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if doc && len(tail) == 0 {
			file, err := os.Open(head)
			if err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				break
			}
			defer file.Close()
			if err := fn(ctx, selectReader(file, enc), filepath.Base(head), log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// walkDir walks directory tree finding documents and archives.
func walkDir(ctx context.Context, dir string, fn docFunc, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := walkArchive(ctx, path, "", filepath.Dir(rel), fn, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		doc, enc, err := isDocumentFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		if err := fn(ctx, selectReader(file, enc), rel, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// walkArchive visits documents inside archive under "pathIn". Names of
// documents are prefixed with "pathOut".
func walkArchive(ctx context.Context, path, pathIn, pathOut string, fn docFunc, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var options []archive.Option
	if cp := state.EnvFromContext(ctx).CodePage; cp != nil {
		options = append(options, archive.WithCodePage(cp))
	}

	return archive.Walk(path, pathIn, func(arc, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, enc, err := isDocumentInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", name), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", arc), zap.String("file", name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := fn(ctx, selectReader(r, enc), filepath.Join(pathOut, filepath.FromSlash(name)), log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
		}
		return nil
	}, options...)
}

// guarded turns panics into errors so a single bad document does not stop
// processing of the rest.
func guarded(fn docFunc) docFunc {
	return func(ctx context.Context, r io.Reader, src string, log *zap.Logger) (rerr error) {
		log.Info("Processing starting", zap.String("from", src))
		defer func(start time.Time) {
			if r := recover(); r != nil {
				log.Error("Processing ended with panic",
					zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
				rerr = fmt.Errorf("processing panic: %v", r)
			} else if rerr == nil {
				log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
			}
		}(time.Now())
		return fn(ctx, r, src, log)
	}
}
