package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/semester-planner/internal/catalog"
	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage and browse the course catalog",
	}

	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogShowCmd())
	cmd.AddCommand(catalogValidateCmd())

	return cmd
}

func catalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load a YAML catalog into the database",
		Long: `Load courses, majors and major requirements from a YAML seed file.

Existing courses and majors with the same code or name are replaced. The
whole file is written in one transaction, so an interrupted or invalid
import leaves the database unchanged.`,
		Example: `  planner catalog import --default
  planner catalog import ./catalog.yaml --backup`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCatalogImport,
	}

	cmd.Flags().Bool("default", false, "Import the built-in catalog")
	cmd.Flags().Bool("backup", false, "Back up the database before importing")

	return cmd
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	useDefault, _ := cmd.Flags().GetBool("default")
	backup, _ := cmd.Flags().GetBool("backup")

	var (
		seed   *catalog.Seed
		source string
		err    error
	)
	switch {
	case useDefault && len(args) > 0:
		return fmt.Errorf("pass either a file or --default, not both")
	case useDefault:
		seed, err = catalog.DefaultSeed()
		source = catalog.DefaultSource
	case len(args) == 1:
		seed, err = catalog.LoadSeedFile(args[0])
		source = args[0]
	default:
		return fmt.Errorf("a catalog file or --default is required")
	}
	if err != nil {
		return err
	}

	in, err := seed.Import(source)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if backup {
		existing, err := store.CountCourses(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			path, err := store.Backup(ctx, filepath.Join(filepath.Dir(store.Path()), "backups"))
			if err != nil {
				return fmt.Errorf("failed to back up database: %w", err)
			}
			slog.Info(cli.FormatInfo("Backed up catalog"), "path", path)
		}
	}

	handler := cli.NewInterruptHandler(os.Stderr, "Import", "No changes were written.")
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	bar := cli.NewProgressBar(os.Stderr, len(in.Courses)+len(in.Majors), "Importing catalog")
	in.Progress = cli.ProgressFunc(bar)

	record, err := store.ImportCatalog(ctx, in)
	if err != nil {
		if handler.WasInterrupted() {
			return errors.New("import interrupted")
		}
		return fmt.Errorf("import failed: %w", err)
	}

	slog.Info(cli.FormatSuccess("Catalog imported"),
		"source", record.Source,
		"courses", record.Courses,
		"majors", record.Majors,
		"import_id", record.ID)

	if dangling := planner.DanglingPrerequisites(in.Courses); len(dangling) > 0 {
		slog.Warn(cli.FormatWarning("Some prerequisites are not in the catalog"),
			"courses", len(dangling),
			"hint", "run \"planner catalog validate\" for details")
	}
	return nil
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog courses",
		Example: `  planner catalog list --level 200,300
  planner catalog list --search data --difficulty easy`,
		Args: cobra.NoArgs,
		RunE: runCatalogList,
	}

	addFilterFlags(cmd)

	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	fs, err := readFilters(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	courses, err := provider.FetchCourses(ctx)
	if err != nil {
		return err
	}

	filtered := planner.Filter(courses, fs)
	out := cmd.OutOrStdout()
	if !fs.IsEmpty() {
		fmt.Fprintf(out, "%s\n\n", cli.StyleSubtle(fmt.Sprintf("%d of %d courses (%s)", len(filtered), len(courses), fs.Describe())))
	}
	if len(filtered) == 0 {
		fmt.Fprintln(out, "No courses match.")
		return nil
	}
	return cli.WriteCourseTable(out, filtered, cli.CourseTable{})
}

func catalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <code>",
		Short:   "Show one course",
		Example: `  planner catalog show "CS 251"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCatalogShow,
	}
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	courses, err := provider.FetchCourses(ctx)
	if err != nil {
		return err
	}

	// Codes contain a space, so unquoted arguments are joined back together.
	want := model.CourseID(strings.Join(args, " "))
	for _, c := range courses {
		if c.ID == want || model.CourseID(c.Code) == want {
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCourseDetail(c))
			return nil
		}
	}
	return fmt.Errorf("course %q not found", strings.Join(args, " "))
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report prerequisites that name no catalog course",
		Long: `Report prerequisites that name no catalog course.

A course with a dangling prerequisite can only become eligible once the
missing code is marked completed. The command exits non-zero when any are
found.`,
		Args: cobra.NoArgs,
		RunE: runCatalogValidate,
	}
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	courses, err := provider.FetchCourses(ctx)
	if err != nil {
		return err
	}

	dangling := planner.DanglingPrerequisites(courses)
	out := cmd.OutOrStdout()
	if len(dangling) == 0 {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("All prerequisites resolve (%d courses)", len(courses))))
		return nil
	}

	codes := make([]string, 0, len(dangling))
	for code := range dangling {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "%s  missing %s\n", code, strings.Join(dangling[code], ", "))
	}
	return fmt.Errorf("%d courses have prerequisites outside the catalog", len(dangling))
}
