// Package fetch downloads StateMod dataset files from the state's
// anonymous FTP archive.
package fetch

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jlaffaye/ftp"

	"github.com/lox/statemod/internal/metrics"
)

const defaultHost = "ftp.dnr.state.co.us:21"

type Client struct {
	host    string
	timeout time.Duration
}

func New(host string) *Client {
	if host == "" {
		host = defaultHost
	}
	return &Client{host: host, timeout: 30 * time.Second}
}

// Host returns the FTP host the client downloads from.
func (c *Client) Host() string {
	return c.host
}

func (c *Client) connect() (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(c.host, ftp.DialWithTimeout(c.timeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	if err := conn.Login("anonymous", "anonymous"); err != nil {
		conn.Quit()
		return nil, backoff.Permanent(fmt.Errorf("ftp login: %w", err))
	}
	return conn, nil
}

// File downloads one remote file to localPath, creating parent
// directories. Transient failures are retried with exponential backoff.
func (c *Client) File(remotePath, localPath string) (int64, error) {
	var n int64
	operation := func() error {
		conn, err := c.connect()
		if err != nil {
			return err
		}
		defer conn.Quit()

		resp, err := conn.Retr(remotePath)
		if err != nil {
			return fmt.Errorf("ftp retr %s: %w", remotePath, err)
		}
		defer resp.Close()

		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return backoff.Permanent(fmt.Errorf("mkdir: %w", err))
		}
		f, err := os.Create(localPath)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create %s: %w", localPath, err))
		}
		n, err = io.Copy(f, resp)
		if err != nil {
			f.Close()
			return fmt.Errorf("copy %s: %w", remotePath, err)
		}
		return f.Close()
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		metrics.FetchesTotal.WithLabelValues(c.host, "error").Inc()
		return 0, err
	}
	metrics.FetchesTotal.WithLabelValues(c.host, "ok").Inc()
	return n, nil
}

// Dataset mirrors every file in a remote dataset directory into
// localDir and returns the local paths. Subdirectories are skipped; a
// published StateMod dataset is a flat directory of model files.
func (c *Client) Dataset(remoteDir, localDir string) ([]string, error) {
	conn, err := c.connect()
	if err != nil {
		return nil, err
	}
	entries, err := conn.List(remoteDir)
	conn.Quit()
	if err != nil {
		return nil, fmt.Errorf("ftp list %s: %w", remoteDir, err)
	}

	var local []string
	for _, e := range entries {
		if e.Type != ftp.EntryTypeFile {
			continue
		}
		dst := filepath.Join(localDir, e.Name)
		if _, err := c.File(path.Join(remoteDir, e.Name), dst); err != nil {
			return local, fmt.Errorf("fetch %s: %w", e.Name, err)
		}
		local = append(local, dst)
	}
	return local, nil
}
