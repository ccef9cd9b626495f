package router

// Help texts served by $help. The DM variant depends on the sender's admin
// role; the channel variant is the same for everyone.

const dmHelp = "Send me a DM with the following command:\n" +
	"`$create` - create a new static group and role (with you inside).\n" +
	"    Example: \n" +
	"        `$create fridays`\n" +
	"\n" +
	"    This will create a new group called static-fridays\n" +
	"    where you will be added. **Don't use whitespaces in the name.**\n" +
	"\n" +
	"Remember that there are other commands you can use inside your static groups. \n" +
	"Use $help there to see an explanation of them."

const dmAdminHelp = "Send me a DM with the following command:\n" +
	"`$create` - create a new static group and role (with you inside).\n" +
	"    Example: \n" +
	"        `$create fridays`\n" +
	"\n" +
	"    This will create a new group called static-fridays\n" +
	"    where you will be added. **Don't use whitespaces in the name.**\n" +
	"\n" +
	"`$delete` - deletes a static group and role.\n" +
	"    Example: \n" +
	"        `$delete fridays`\n" +
	"\n" +
	"    This will delete the group/role static-fridays if it exists.\n" +
	"\n" +
	"`$last_message` - lists all static channels in order of the last message date.\n" +
	"    If no message is present in the channel, its date is the date of creation of the channel.\n" +
	"\n" +
	"Remember that there are other commands you can use inside your static groups. \n" +
	"Use $help there to see an explanation of them."

const channelHelp = "Send a message with any of these commands inside your static private group.\n" +
	"\n" +
	"For commands that ask you for usernames, \n" +
	"use the discord username (i.e. DiscordLord#9999), \n" +
	"make sure that every character and number is correct\n" +
	"and that you respect uppercase/lowercase.\n" +
	"\n" +
	"`$add` - add members to this group. You can pass multiple people separating them by spaces.\n" +
	"    Example:\n" +
	"        `$add DiscordLord#9999`\n" +
	"        or\n" +
	"        `$add DiscordLord#9999 DiscordLady#1234`\n" +
	"\n" +
	"`$remove` - remove members from this group. You can pass multiple people separating them by spaces.\n" +
	"    Example:\n" +
	"        `$remove DiscordLord#9999`\n" +
	"        or\n" +
	"        `$remove DiscordLord#9999 DiscordLady#1234`\n" +
	"\n" +
	"`$members` - list all members of this static.\n" +
	"\n" +
	"`$mention` - mention (@ ping) all members of this static.\n" +
	"\n" +
	"`$pin` - pin the last message or the replied message.\n" +
	"\n" +
	"    If you reply to the message you want to pin with $pin, it will pin that message.\n" +
	"    If you don't reply to any message but still use $pin, it will pin the previous message.\n" +
	"\n" +
	"`$unpin` - unpin the replied message.\n" +
	"\n" +
	"    **You must reply to the message you want to unpin** with $unpin for it to work."
