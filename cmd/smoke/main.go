package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

type client struct {
	baseURL string
	http    *http.Client
}

func (c *client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp, body, err
}

func (c *client) send(method, path string, body interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) upload(path string) (*http.Response, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func step(title string, resp *http.Response, body []byte, err error) {
	color.Yellow("\n%s", title)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(body)
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	file := flag.String("file", "", "document to upload (txt, pdf or docx)")
	question := flag.String("question", "Summarize the document in one sentence.", "question to ask")
	keep := flag.Bool("keep", false, "keep the session instead of clearing it at the end")
	flag.Parse()

	if *file == "" {
		color.Red("Usage: smoke -file <path> [-question <text>] [-url <base>]")
		os.Exit(2)
	}

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 2 * time.Minute}}
	color.Cyan("Document chat smoke test against %s", *baseURL)

	resp, body, err := c.send(http.MethodGet, "/health", nil)
	step("1. Health", resp, body, err)

	resp, body, err = c.upload(*file)
	step("2. Upload "+filepath.Base(*file), resp, body, err)

	resp, body, err = c.send(http.MethodGet, "/documents", nil)
	step("3. List documents", resp, body, err)

	resp, body, err = c.send(http.MethodPost, "/chat", map[string]string{"question": *question})
	step("4. Ask: "+*question, resp, body, err)

	resp, body, err = c.send(http.MethodGet, "/messages", nil)
	step("5. Transcript", resp, body, err)

	if *keep {
		return
	}

	resp, body, err = c.send(http.MethodDelete, "/documents", nil)
	step("6. Clear session", resp, body, err)

	resp, body, err = c.send(http.MethodGet, "/messages", nil)
	step("7. Transcript after clear", resp, body, err)
}
