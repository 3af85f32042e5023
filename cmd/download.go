package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/komikcast/internal/chapters"
	"github.com/brogergvhs/komikcast/internal/config"
	"github.com/brogergvhs/komikcast/internal/downloader"
	"github.com/brogergvhs/komikcast/internal/providers"
	"github.com/brogergvhs/komikcast/internal/ui"
	"github.com/brogergvhs/komikcast/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	// selection
	flagChapter  string
	flagRange    string
	flagList     string
	flagAll      bool
	flagAllowExt string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <series-slug>",
	Short: "Download chapters of a series as CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	f := downloadCmd.Flags()

	// selection
	f.StringVar(&flagChapter, "chapter", "", "download single chapter by index or label (e.g. 5 or 28.5)")
	f.StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	f.StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")
	f.BoolVar(&flagAll, "all", false, "download every chapter without prompting")
	f.StringVar(&flagAllowExt, "allow-ext", "", "allowed image extensions (e.g. \"webp|jpg|png\")")

	// runtime
	f.StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	f.IntVar(&flagImageWorkers, "image-workers", 0, "parallel image downloads per chapter")
	f.IntVar(&flagChapterWorkers, "chapter-workers", 0, "parallel chapter downloads")
	f.BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	f.BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	f.BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed images instead of failing the whole chapter")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	opts := globalOptions()
	opts.Output = flagOutput
	opts.ImageWorkers = flagImageWorkers
	opts.ChapterWorkers = flagChapterWorkers
	opts.KeepFolders = flagKeepFolders
	opts.SkipBroken = flagSkipBroken

	a, err := newApp(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg := a.cfg
	if flagAllowExt != "" {
		cfg.AllowExt = splitExt(flagAllowExt)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	ctx, stop := util.InterruptContext(cmd.Context(), cfg.Output, errOut)
	defer stop()

	detail := a.client.SeriesDetail(ctx, args[0])
	if detail.Empty() {
		return fmt.Errorf("series %q not found", args[0])
	}

	all := chapters.FromRefs(detail.Chapters)
	if len(all) == 0 {
		return fmt.Errorf("series %q lists no chapters", detail.Title)
	}

	var selected []chapters.Chapter
	switch {
	case flagChapter != "" || flagRange != "" || flagList != "":
		selected = chapters.Filter(all, flagChapter, flagRange, flagList)
	case flagAll || flagDryRun:
		selected = all
	default:
		fmt.Fprintf(out, "Found %d chapters of %s.\n\n", len(all), detail.Title)
		selected, err = pickChapters(all)
		if err != nil {
			return err
		}
	}

	if len(selected) == 0 {
		return errors.New("no chapters selected")
	}

	if flagDryRun {
		fmt.Fprintf(out, "Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Fprintf(out, "%3d) %s  [%s]\n    %s\n", i+1, cell(ch.Title), ch.Label, ch.OutputCBZPath(cfg.Output, detail.Title))
		}
		return nil
	}

	a.log.Infof("Config file: %s", a.used)
	a.log.Infof("Downloading %d chapter(s) of %s into %s", len(selected), detail.Title, cfg.Output)

	stats := &ui.Stats{}
	start := time.Now()

	pm := ui.NewProgressManager(errOut)
	dl := downloader.New(a.http, downloader.Options{
		Workers:    cfg.ImageWorkers,
		SkipBroken: cfg.SkipBroken,
		AllowExt:   cfg.AllowExt,
	})

	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadChapter(ctx, a, dl, pm, cfg, detail, ch, stats); err != nil {
				stats.Failed.Add(1)
				a.log.Errorf("Chapter %s failed: %v", ch.Label, err)
			}
		}()
	}
	wg.Wait()
	pm.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	stats.Print(out, time.Since(start))
	if n := stats.Failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d chapters failed", n, len(selected))
	}

	fmt.Fprintln(out, "\nAll done.")
	return nil
}

func downloadChapter(
	ctx context.Context,
	a *app,
	dl *downloader.Downloader,
	pm *ui.ProgressManager,
	cfg *config.Config,
	detail providers.SeriesDetail,
	ch chapters.Chapter,
	stats *ui.Stats,
) error {
	handle := pm.Register("Ch." + ch.Label)
	defer handle.MarkDone()

	pages := a.client.ChapterRead(ctx, ch.Slug)
	if len(pages) == 0 {
		return fmt.Errorf("no pages for %s", ch.Slug)
	}

	tmpFolder := filepath.Join(cfg.Output, ch.FolderName(detail.Title))
	res, err := dl.Pages(ctx, pages, tmpFolder, a.client.ChapterURL(ch.Slug), handle)
	if err != nil {
		_ = os.RemoveAll(tmpFolder)
		return err
	}
	if len(res.Files) == 0 {
		_ = os.RemoveAll(tmpFolder)
		return errors.New("every page was skipped")
	}

	info := comicInfo(detail, ch, a.client.ChapterURL(ch.Slug))
	if err := util.CreateCBZ(res.Files, info, ch.OutputCBZPath(cfg.Output, detail.Title)); err != nil {
		_ = os.RemoveAll(tmpFolder)
		return fmt.Errorf("cbz: %w", err)
	}

	if !cfg.KeepFolders {
		util.CleanupFolder(tmpFolder)
	}

	stats.Chapters.Add(1)
	stats.Pages.Add(int64(len(res.Files)))
	stats.Skipped.Add(int64(res.Skipped + res.Failed))
	stats.Bytes.Add(res.Bytes)
	return nil
}

func comicInfo(d providers.SeriesDetail, ch chapters.Chapter, web string) *util.ComicInfo {
	genres := make([]string, 0, len(d.Genre))
	for _, g := range d.Genre {
		genres = append(genres, g.Name)
	}

	return &util.ComicInfo{
		Title:   cell(ch.Title),
		Series:  d.Title,
		Number:  ch.Label,
		Writer:  d.Author,
		Genre:   strings.Join(genres, ", "),
		Summary: d.Synopsis,
		Web:     web,
	}
}

// pickChapters prompts for one chapter or all of them.
func pickChapters(all []chapters.Chapter) ([]chapters.Chapter, error) {
	items := make([]string, 0, len(all)+1)
	items = append(items, "All chapters")
	for _, ch := range all {
		items = append(items, fmt.Sprintf("%s  [%s]", cell(ch.Title), ch.Label))
	}

	prompt := promptui.Select{
		Label: "Select chapter",
		Items: items,
		Size:  15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, errors.New("selection cancelled")
	}
	if idx == 0 {
		return all, nil
	}

	return []chapters.Chapter{all[idx-1]}, nil
}

func splitExt(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})

	out := []string{}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}

	return out
}
