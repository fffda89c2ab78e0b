package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolioCMS/internal/config"
	"portfolioCMS/internal/storage"
)

// 管理端可维护的对象前缀：上传资产与导出的 PDF。
var managedPrefixes = []string{"assets/", "exports/"}

func openObjectStore() (*storage.Client, error) {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.MinIO.Enabled() {
		return nil, errors.New("minio is not configured (MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY)")
	}
	return storage.NewClient(cfg.MinIO)
}

func managedKey(key string) bool {
	for _, prefix := range managedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func newAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "管理对象存储中的上传资产与导出文件",
	}

	var prefix string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "列出对象",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !managedKey(prefix) {
				return fmt.Errorf("prefix must start with one of %v", managedPrefixes)
			}
			client, err := openObjectStore()
			if err != nil {
				return err
			}
			objects, err := client.ListObjects(cmd.Context(), prefix, limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tSIZE\tMODIFIED")
			for _, o := range objects {
				fmt.Fprintf(w, "%s\t%d\t%s\n", o.Key, o.Size, o.LastModified.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&prefix, "prefix", "assets/", "对象前缀")
	list.Flags().IntVar(&limit, "limit", 50, "最多显示条数")

	del := &cobra.Command{
		Use:   "delete <key>",
		Short: "删除一个对象（不存在时视为成功）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			if !managedKey(key) || strings.Contains(key, "..") {
				return fmt.Errorf("refusing to delete %q", key)
			}
			client, err := openObjectStore()
			if err != nil {
				return err
			}
			if err := client.DeleteObject(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "deleted %s\n", key)
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}
