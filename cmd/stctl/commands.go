package main

import (
	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/urfave/cli/v2"
)

func commands(a *app) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list",
			Usage: "List a folder (root by default)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "folder", Usage: "Folder ID"},
			},
			Action: func(c *cli.Context) error {
				content, err := a.services.Files.ListFolder(c.Context, c.String("folder"))
				if err != nil {
					return err
				}
				return a.print(content)
			},
		},
		{
			Name:      "mkdir",
			Usage:     "Create a folder",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "parent", Usage: "Parent folder ID"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("mkdir needs exactly one NAME", 2)
				}
				resp, err := a.services.Files.CreateFolder(c.Context, c.Args().First(), c.String("parent"))
				if err != nil {
					return err
				}
				return a.print(resp)
			},
		},
		{
			Name:      "info",
			Usage:     "Show status of up to 100 comma-separated file IDs",
			ArgsUsage: "IDS",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("info needs exactly one IDS argument", 2)
				}
				info, err := a.services.Stream.Info(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				return a.print(info)
			},
		},
		{
			Name:      "ticket",
			Usage:     "Prepare a download ticket",
			ArgsUsage: "FILE_ID",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("ticket needs exactly one FILE_ID", 2)
				}
				ticket, err := a.services.Stream.Ticket(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				return a.print(ticket)
			},
		},
		{
			Name:      "link",
			Usage:     "Resolve a ticket into a direct download link",
			ArgsUsage: "FILE_ID TICKET",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "captcha", Usage: "Captcha response, when the ticket asked for one"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return cli.Exit("link needs FILE_ID and TICKET", 2)
				}
				link, err := a.services.Stream.Link(c.Context, c.Args().Get(0), c.Args().Get(1), c.String("captcha"))
				if err != nil {
					return err
				}
				return a.print(link)
			},
		},
		{
			Name:  "remote",
			Usage: "Manage remote uploads",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Queue a remote upload",
					ArgsUsage: "URL",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "folder", Usage: "Destination folder ID"},
						&cli.StringFlag{Name: "name", Usage: "File name override"},
						&cli.StringFlag{Name: "headers", Usage: "Extra request headers sent by the upstream fetcher"},
					},
					Action: func(c *cli.Context) error {
						if c.NArg() != 1 {
							return cli.Exit("remote add needs exactly one URL", 2)
						}
						resp, err := a.services.Remote.Add(c.Context, domain.AddRemoteUploadRequest{
							URL:      c.Args().First(),
							FolderID: c.String("folder"),
							Headers:  c.String("headers"),
							Name:     c.String("name"),
						})
						if err != nil {
							return err
						}
						return a.print(resp)
					},
				},
				{
					Name:  "status",
					Usage: "Show remote upload status",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "id", Usage: "Remote upload ID"},
						&cli.IntFlag{Name: "limit", Usage: "Maximum number of uploads"},
					},
					Action: func(c *cli.Context) error {
						statuses, err := a.services.Remote.Status(c.Context, c.String("id"), c.Int("limit"))
						if err != nil {
							return err
						}
						return a.print(statuses)
					},
				},
				{
					Name:      "remove",
					Usage:     `Cancel a remote upload ("all" cancels every upload)`,
					ArgsUsage: "ID",
					Action: func(c *cli.Context) error {
						if c.NArg() != 1 {
							return cli.Exit("remote remove needs exactly one ID", 2)
						}
						resp, err := a.services.Remote.Remove(c.Context, c.Args().First())
						if err != nil {
							return err
						}
						return a.print(resp)
					},
				},
			},
		},
		{
			Name:  "upload-url",
			Usage: "Get a one-time upload URL",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "folder", Usage: "Destination folder ID"},
				&cli.StringFlag{Name: "sha256", Usage: "Expected sha256 of the file"},
				&cli.BoolFlag{Name: "http-only", Usage: "Only return plain HTTP upload links"},
			},
			Action: func(c *cli.Context) error {
				q := domain.UploadURLQuery{
					Folder: c.String("folder"),
					SHA256: c.String("sha256"),
				}
				if c.IsSet("http-only") {
					httpOnly := c.Bool("http-only")
					q.HTTPOnly = &httpOnly
				}
				upload, err := a.services.Upload.URL(c.Context, q)
				if err != nil {
					return err
				}
				return a.print(upload)
			},
		},
	}
}
