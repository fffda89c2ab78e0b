package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"portfolioCMS/internal/content"
	"portfolioCMS/internal/database"
	"portfolioCMS/internal/storage"
)

func newShowCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "打印当前内容文档",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if raw {
				data, err := e.adapter.Raw(cmd.Context())
				if errors.Is(err, storage.ErrNotFound) {
					return errors.New("no document stored yet")
				}
				if err != nil {
					return fmt.Errorf("read raw document: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e.store.Document(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "输出存储中的原始字节，不做解析")
	return cmd
}

func newExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "将内容文档导出为 JSON 文件",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if out == "" || out == "-" {
				return writeJSON(cmd.OutOrStdout(), e.store.Document(cmd.Context()))
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := writeJSON(f, e.store.Document(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件（默认标准输出）")
	return cmd
}

func newImportCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "用 JSON 文件整体替换内容文档",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" {
				return errors.New("missing required flag: --in")
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}
			doc, err := decodeDocument(data)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.adapter.Write(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d projects, %d skills, %d works\n",
				len(doc.Projects), len(doc.Skills), len(doc.MyWorks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "输入文件（必填）")
	return cmd
}

func newResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "将内容恢复为默认文档",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset overwrites all content; pass --yes to confirm")
			}
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.adapter.Write(cmd.Context(), content.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "content reset to defaults")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "确认覆盖")
	return cmd
}

func newSnapshotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "管理内容快照",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "列出最近的快照",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			snapshots, err := database.NewSnapshotRepository(e.db).List(cmd.Context(), e.adapter.Key(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tREASON\tCORRELATION")
			for _, s := range snapshots {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Reason, s.CorrelationID)
			}
			return w.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "最多显示条数")

	create := &cobra.Command{
		Use:   "create [reason]",
		Short: "立即保存一个快照",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason := "cli"
			if len(args) == 1 {
				reason = args[0]
			}
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			data, err := json.Marshal(e.store.Document(cmd.Context()))
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}
			snapshot := &database.Snapshot{StorageKey: e.adapter.Key(), Document: datatypes.JSON(data), Reason: reason}
			if err := database.NewSnapshotRepository(e.db).Create(cmd.Context(), snapshot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "snapshot %d saved\n", snapshot.ID)
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore <id>",
		Short: "用指定快照覆盖当前内容",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse snapshot id: %w", err)
			}
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			snapshot, err := database.NewSnapshotRepository(e.db).Get(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			doc, err := decodeDocument(snapshot.Document)
			if err != nil {
				return err
			}
			if err := e.adapter.Write(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "restored snapshot %d\n", snapshot.ID)
			return nil
		},
	}

	cmd.AddCommand(list, create, restore)
	return cmd
}

// decodeDocument 解析外部提供的文档，并补齐缺失的区块。
func decodeDocument(data []byte) (content.Document, error) {
	var doc content.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return content.Document{}, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
