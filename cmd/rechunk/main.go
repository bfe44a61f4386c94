// Command rechunk is a non-interactive CLI for the ReChunk API: project
// provisioning, chunk publishing, listing, and session-token issuance. It reads
// and writes the rechunk.json project file in the working directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/projectcfg"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rechunk <command> [flags]

commands:
  init       create a project (admin credentials) and write rechunk.json
  publish    publish a chunk: rechunk publish <chunkId> <file>
  list       list published chunks
  unpublish  delete a chunk: rechunk unpublish <chunkId>
  token      issue a single-use dashboard session token
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = cmdInit(args)
	case "publish":
		err = cmdPublish(args)
	case "list":
		err = cmdList(args)
	case "unpublish":
		err = cmdUnpublish(args)
	case "token":
		err = cmdToken(args)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "rechunk:", err)
		os.Exit(1)
	}
}

func httpClient() *resty.Client {
	return resty.New().SetTimeout(30 * time.Second)
}

// cmdInit provisions a new project with admin credentials and writes the
// resulting keys into rechunk.json. The private key is shown exactly once by
// the server; losing the file means losing it.
func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	host := fs.String("host", "http://localhost:8080", "API host")
	user := fs.String("user", os.Getenv("RECHUNK_USERNAME"), "admin username")
	pass := fs.String("pass", os.Getenv("RECHUNK_PASSWORD"), "admin password")
	_ = fs.Parse(args)

	if *user == "" || *pass == "" {
		return fmt.Errorf("admin credentials required (-user/-pass or RECHUNK_USERNAME/RECHUNK_PASSWORD)")
	}

	var p model.Project
	resp, err := httpClient().R().
		SetBasicAuth(*user, *pass).
		SetResult(&p).
		Post(*host + "/api/v1/projects")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}

	cfg := &projectcfg.Config{
		Host:       *host,
		Project:    p.ID,
		ReadKey:    p.ReadKey,
		WriteKey:   p.WriteKey,
		PublicKey:  p.PublicKey,
		PrivateKey: p.PrivateKey,
		Entry:      map[string]string{},
	}
	if err := projectcfg.Save(".", cfg); err != nil {
		return err
	}
	fmt.Printf("created project %s (config written to %s)\n", p.ID, projectcfg.FileName)
	return nil
}

// cmdPublish uploads the raw file contents as the chunk payload.
func cmdPublish(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rechunk publish <chunkId> <file>")
	}
	chunkID, file := args[0], args[1]

	cfg, err := projectcfg.Load(".")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	resp, err := httpClient().R().
		SetBasicAuth(cfg.Project, cfg.WriteKey).
		SetBody(data).
		Post(fmt.Sprintf("%s/api/v1/projects/%s/chunks/%s", cfg.Host, cfg.Project, chunkID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	fmt.Printf("published %s (%d bytes)\n", chunkID, len(data))
	return nil
}

// cmdList prints the project's chunks.
func cmdList(args []string) error {
	_ = args
	cfg, err := projectcfg.Load(".")
	if err != nil {
		return err
	}

	var chunks []model.Chunk
	resp, err := httpClient().R().
		SetBasicAuth(cfg.Project, cfg.ReadKey).
		SetResult(&chunks).
		Get(fmt.Sprintf("%s/api/v1/projects/%s/chunks", cfg.Host, cfg.Project))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}

	for _, c := range chunks {
		fmt.Printf("%s\t%d bytes\tupdated %s\n", c.ID, len(c.Data), c.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// cmdUnpublish deletes a chunk; deleting a missing chunk succeeds.
func cmdUnpublish(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rechunk unpublish <chunkId>")
	}
	cfg, err := projectcfg.Load(".")
	if err != nil {
		return err
	}

	resp, err := httpClient().R().
		SetBasicAuth(cfg.Project, cfg.WriteKey).
		Delete(fmt.Sprintf("%s/api/v1/projects/%s/chunks/%s", cfg.Host, cfg.Project, args[0]))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	fmt.Printf("unpublished %s\n", args[0])
	return nil
}

// cmdToken issues a single-use session token for the dashboard.
func cmdToken(args []string) error {
	_ = args
	cfg, err := projectcfg.Load(".")
	if err != nil {
		return err
	}

	var out struct {
		Token string `json:"token"`
	}
	resp, err := httpClient().R().
		SetBasicAuth(cfg.Project, cfg.WriteKey).
		SetResult(&out).
		Post(cfg.Host + "/api/v1/token")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	fmt.Printf("%s/api/v1/auth/token?projectId=%s&token=%s\n", cfg.Host, cfg.Project, out.Token)
	return nil
}

func apiError(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status(), body.Error)
	}
	return fmt.Errorf("unexpected response: %s", resp.Status())
}
