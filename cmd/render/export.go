package render

import (
	"context"
	"fmt"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/shirou/gopsutil/v3/cpu"
)

// archiveFormat picks the archive format from the output file extension.
func archiveFormat(filename string) (archives.Archiver, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return archives.Zip{}, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return archives.CompressedArchive{Archival: archives.Tar{}, Compression: archives.Gz{}}, nil
	case strings.HasSuffix(name, ".tar.zst"):
		return archives.CompressedArchive{Archival: archives.Tar{}, Compression: archives.Zstd{}}, nil
	case strings.HasSuffix(name, ".tar"):
		return archives.Tar{}, nil
	}
	return nil, fmt.Errorf("unsupported archive extension: %s (use .zip, .tar, .tar.gz or .tar.zst)", filename)
}

// Export packs the rendered images in dir into one archive, under a
// top-level folder named after dir.
func Export(ctx context.Context, dir, output string) (int, error) {
	archiver, err := archiveFormat(output)
	if err != nil {
		return 0, err
	}

	images, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return 0, err
	}
	if len(images) == 0 {
		return 0, fmt.Errorf("no images in %s", dir)
	}

	fileMap := make(map[string]string, len(images))
	for _, path := range images {
		fileMap[path] = pathpkg.Join(filepath.Base(dir), filepath.Base(path))
	}
	files, err := archives.FilesFromDisk(ctx, nil, fileMap)
	if err != nil {
		return 0, fmt.Errorf("failed to collect images: %w", err)
	}

	outFile, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", output, err)
	}
	defer outFile.Close()

	if err := archiver.Archive(ctx, outFile, files); err != nil {
		os.Remove(output)
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	return len(files), nil
}

// workers resolves the --parallel flag. 0 means one lilypond per physical core.
func workers(parallel int) int {
	if parallel > 0 {
		return parallel
	}
	cores, err := cpu.Counts(false)
	if err != nil || cores < 1 {
		return 1
	}
	return cores
}
