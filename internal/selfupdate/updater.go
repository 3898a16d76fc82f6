package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

const binaryName = "wordiz"

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("no release asset for this platform")
)

// Stage names a step of Update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateProgress is reported once per stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// IsDevBuild reports whether v is not a release version: the "(devel)"
// placeholder, an empty string or anything that is not semver.
func IsDevBuild(v string) bool {
	return v == DevVersion || !semver.IsValid(canonical(v))
}

// releaseAsset is one wordiz archive of a release. Releases are published as
//
//	wordiz_<version>_<goos>_<goarch>.tar.gz   (.zip on windows)
//	wordiz_<version>_checksums.txt
//
// with the version lacking its "v" prefix, as goreleaser names them.
type releaseAsset struct {
	Archive   string
	Checksums string
	Binary    string
}

func assetFor(tag, goos, goarch string) (releaseAsset, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return releaseAsset{}, fmt.Errorf("%w: %s/%s", ErrNoAsset, goos, goarch)
	}

	ext, bin := ".tar.gz", binaryName
	switch goos {
	case "linux", "darwin":
	case "windows":
		ext, bin = ".zip", binaryName+".exe"
	default:
		return releaseAsset{}, fmt.Errorf("%w: %s/%s", ErrNoAsset, goos, goarch)
	}

	v := strings.TrimPrefix(canonical(tag), "v")
	return releaseAsset{
		Archive:   fmt.Sprintf("%s_%s_%s_%s%s", binaryName, v, goos, goarch, ext),
		Checksums: fmt.Sprintf("%s_%s_checksums.txt", binaryName, v),
		Binary:    bin,
	}, nil
}

// Update replaces the running executable with the latest release when it
// is newer than currentVersion.
func (c *Checker) Update(ctx context.Context, currentVersion string, progress func(UpdateProgress)) error {
	if IsDevBuild(currentVersion) {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	progress(UpdateProgress{Stage: StageCheck, Message: "Checking for the latest release..."})
	result, err := c.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return ErrAlreadyLatest
	}
	tag := result.LatestVersion

	asset, err := assetFor(tag, c.goos, c.goarch)
	if err != nil {
		return err
	}
	download := func(name string) ([]byte, error) {
		url := fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
			strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)
		return c.get(ctx, url, "application/octet-stream")
	}

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading wordiz %s...", tag)})
	archive, err := download(asset.Archive)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset.Archive, err)
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	sums, err := download(asset.Checksums)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset.Checksums, err)
	}
	want, ok := parseChecksums(sums)[asset.Archive]
	if !ok {
		return fmt.Errorf("%w: %s is not listed in %s", ErrChecksum, asset.Archive, asset.Checksums)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	binary, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract %s: %w", asset.Binary, err)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running executable: %w", err)
	}
	if err := replaceExecutable(target, binary, c.goos); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("Updated wordiz %s -> %s", currentVersion, tag)})
	return nil
}

// parseChecksums reads sha256sum output: "<hex>  <file>" per line.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

func extractBinary(archive []byte, asset releaseAsset) ([]byte, error) {
	if strings.HasSuffix(asset.Archive, ".zip") {
		return extractFromZip(archive, asset.Binary)
	}
	return extractFromTarGz(archive, asset.Binary)
}

func extractFromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func extractFromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%q not found in archive", name)
}

// replaceExecutable writes binary next to target and renames it into place,
// keeping target's file mode. Windows cannot overwrite a running
// executable, so there the old one is first moved aside to target+".old".
func replaceExecutable(target string, binary []byte, goos string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(binary); err != nil {
		tmp.Close()
		return fmt.Errorf("write new executable: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync new executable: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}

	if goos == "windows" {
		old := target + ".old"
		_ = os.Remove(old)
		if err := os.Rename(target, old); err != nil {
			return fmt.Errorf("move old executable aside: %w", err)
		}
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("install new executable: %w", err)
	}
	return nil
}
