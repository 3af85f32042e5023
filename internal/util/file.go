package util

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// ComicInfo is the metadata entry comic readers look for inside a CBZ.
type ComicInfo struct {
	XMLName   xml.Name `xml:"ComicInfo"`
	Title     string   `xml:"Title,omitempty"`
	Series    string   `xml:"Series,omitempty"`
	Number    string   `xml:"Number,omitempty"`
	Writer    string   `xml:"Writer,omitempty"`
	Genre     string   `xml:"Genre,omitempty"`
	Summary   string   `xml:"Summary,omitempty"`
	Web       string   `xml:"Web,omitempty"`
	PageCount int      `xml:"PageCount,omitempty"`
}

// CreateCBZ zips files in the given order, followed by ComicInfo.xml when
// info is not nil.
func CreateCBZ(files []string, info *ComicInfo, output string) (err error) {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cbz: close %s: %w", output, cerr)
		}
	}()

	z := zip.NewWriter(out)
	defer func() {
		if cerr := z.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cbz: finish %s: %w", output, cerr)
		}
	}()

	for _, file := range files {
		if err := addFileToZip(z, file); err != nil {
			return err
		}
	}

	if info != nil {
		if info.PageCount == 0 {
			info.PageCount = len(files)
		}
		if err := addComicInfo(z, info); err != nil {
			return err
		}
	}

	return nil
}

func addComicInfo(z *zip.Writer, info *ComicInfo) error {
	b, err := xml.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("cbz: ComicInfo.xml: %w", err)
	}

	w, err := z.Create("ComicInfo.xml")
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(b)

	return err
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", file, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
