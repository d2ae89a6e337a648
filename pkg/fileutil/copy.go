package fileutil

import (
	"io"
	"os"
	"time"

	"github.com/thoreinstein/tmplorg/internal/errors"
)

// CopyFile copies a single regular file from src to dst, replacing dst if it
// exists. The permission bits and modification time of src are carried over.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating source file %s", src)
	}
	if !srcInfo.Mode().IsRegular() {
		return errors.Newf("source %s is not a regular file", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying content from %s to %s", src, dst)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing destination file %s", dst)
	}

	// OpenFile applies the umask; set the exact bits afterwards.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", dst)
	}

	// A zero access time leaves it unchanged.
	if err := os.Chtimes(dst, time.Time{}, srcInfo.ModTime()); err != nil {
		return errors.Wrapf(err, "setting times on %s", dst)
	}

	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
