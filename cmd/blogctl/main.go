// Command blogctl is a command line client for the blog API. It talks to a
// running server over HTTP or gRPC and keeps the auth token from the last
// register or login in ~/.blog_token.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oksasatya/go-blog-platform/pkg/client"
)

const (
	defaultHTTPServer = "http://localhost:3000"
	defaultGRPCServer = "localhost:50051"
	tokenFile         = ".blog_token"
)

func main() {
	useGRPC := flag.Bool("grpc", false, "use the gRPC transport instead of HTTP")
	server := flag.String("server", "", "server address (default: localhost:3000 for HTTP, localhost:50051 for gRPC)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg := client.Config{Transport: client.TransportHTTP, Addr: *server}
	if *useGRPC {
		cfg.Transport = client.TransportGRPC
		if cfg.Addr == "" {
			cfg.Addr = defaultGRPCServer
		}
	} else if cfg.Addr == "" {
		cfg.Addr = defaultHTTPServer
	}

	c, err := client.New(cfg)
	if err != nil {
		fatalf("create client: %v", err)
	}
	defer c.Close()

	if tok, err := os.ReadFile(tokenPath()); err == nil {
		c.SetToken(strings.TrimSpace(string(tok)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := runCommand(ctx, c, args[0], args[1:]); err != nil {
		fatalf("%v", err)
	}
}

func runCommand(ctx context.Context, c *client.Client, command string, args []string) error {
	switch command {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		fs.Parse(args)

		s, err := c.Register(ctx, *username, *email, *password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		if err := saveToken(s.Token); err != nil {
			return err
		}
		fmt.Println("Registration successful!")
		fmt.Printf("User ID: %d\n", s.User.ID)
		fmt.Printf("Username: %s\n", s.User.Username)
		fmt.Printf("Email: %s\n", s.User.Email)
		fmt.Printf("Token saved to %s\n", tokenPath())
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		fs.Parse(args)

		s, err := c.Login(ctx, *email, *password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveToken(s.Token); err != nil {
			return err
		}
		fmt.Println("Login successful!")
		fmt.Printf("User ID: %d\n", s.User.ID)
		fmt.Printf("Username: %s\n", s.User.Username)
		fmt.Printf("Token saved to %s\n", tokenPath())
		return nil

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		title := fs.String("title", "", "post title")
		content := fs.String("content", "", "post content")
		fs.Parse(args)

		post, err := c.CreatePost(ctx, *title, *content)
		if err != nil {
			return fmt.Errorf("create post failed: %w", err)
		}
		fmt.Println("Post created successfully!")
		printPost(post)
		return nil

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		id := fs.Int64("id", 0, "post id")
		fs.Parse(args)

		post, err := c.GetPost(ctx, *id)
		if err != nil {
			return fmt.Errorf("get post failed: %w", err)
		}
		printPost(post)
		return nil

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		id := fs.Int64("id", 0, "post id")
		title := fs.String("title", "", "post title")
		content := fs.String("content", "", "post content")
		fs.Parse(args)

		post, err := c.UpdatePost(ctx, *id, *title, *content)
		if err != nil {
			return fmt.Errorf("update post failed: %w", err)
		}
		fmt.Println("Post updated successfully!")
		printPost(post)
		return nil

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "post id")
		fs.Parse(args)

		if err := c.DeletePost(ctx, *id); err != nil {
			return fmt.Errorf("delete post failed: %w", err)
		}
		fmt.Printf("Post %d deleted successfully!\n", *id)
		return nil

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number, starting at 1")
		pageSize := fs.Int("page-size", 10, "posts per page")
		fs.Parse(args)

		list, err := c.ListPosts(ctx, *page, *pageSize)
		if err != nil {
			return fmt.Errorf("list posts failed: %w", err)
		}

		start := (list.Page-1)*list.PageSize + 1
		end := start + len(list.Posts) - 1
		fmt.Printf("Posts (%d-%d of %d):\n", start, end, list.Total)
		fmt.Println(strings.Repeat("-", 60))
		for _, p := range list.Posts {
			author := p.AuthorUsername
			if author == "" {
				author = "unknown"
			}
			fmt.Printf("[%d] %s (by %s)\n", p.ID, p.Title, author)
		}
		if len(list.Posts) == 0 {
			fmt.Println("No posts found.")
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printPost(p *client.Post) {
	author := p.AuthorUsername
	if author == "" {
		author = "unknown"
	}
	fmt.Printf("ID: %d\n", p.ID)
	fmt.Printf("Title: %s\n", p.Title)
	fmt.Printf("Content: %s\n", p.Content)
	fmt.Printf("Author: %s (ID: %d)\n", author, p.AuthorID)
	fmt.Printf("Created: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, tokenFile)
}

func saveToken(token string) error {
	if err := os.WriteFile(tokenPath(), []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: blogctl [--grpc] [--server ADDR] COMMAND [flags]

Commands:
  register   --username U --email E --password P   register a new user
  login      --email E --password P                login with existing credentials
  create     --title T --content C                 create a new post
  get        --id N                                get a post by id
  update     --id N --title T --content C          update an owned post
  delete     --id N                                delete an owned post
  list       [--page N] [--page-size N]            list posts, newest first
`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "blogctl: "+format+"\n", args...)
	os.Exit(1)
}
