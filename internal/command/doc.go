// Package command implements the forumctl commands, one per screen of the
// forum: the home page, the auth forms, forum and post views, the comment
// thread and the upload flow. Commands validate input locally with the
// model form rules, call the API client, and hand results to the renderer;
// they never format errors themselves.
package command
